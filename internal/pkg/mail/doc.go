// Package mail sends email. Verification codes and notification emails go
// through the Mail interface so use cases never touch a concrete provider;
// the SMTP implementation lives alongside it.
package mail
