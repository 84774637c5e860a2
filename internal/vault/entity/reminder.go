package entity

import "time"

const (
	// ResetCycle is how long a supplier password stays fresh.
	ResetCycle = 30 * 24 * time.Hour
	// ReminderLead is how far before expiry the reminder window opens.
	ReminderLead = 7 * 24 * time.Hour
)

// Reminder is a credential approaching its password reset deadline.
type Reminder struct {
	CredentialID int64
	SupplierName string
	ExpiresAt    time.Time
}

// ExpiresAt returns when the credential's password cycle ends, or false when
// the credential has no recorded reset time.
func (c Credential) ExpiresAt() (time.Time, bool) {
	if c.LastReset == nil {
		return time.Time{}, false
	}

	return c.LastReset.Add(ResetCycle), true
}

// DueForReset reports whether now falls inside the reminder window
// [expiry-7d, expiry). Credentials without a reset time are never due.
func (c Credential) DueForReset(now time.Time) bool {
	expiry, ok := c.ExpiresAt()
	if !ok {
		return false
	}

	open := expiry.Add(-ReminderLead)

	return !now.Before(open) && now.Before(expiry)
}
