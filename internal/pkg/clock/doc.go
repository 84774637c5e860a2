// Package clock abstracts the current time behind an interface. Expiry and
// reminder calculations depend on it, so tests inject a fixed clock instead
// of reading the system time.
package clock
