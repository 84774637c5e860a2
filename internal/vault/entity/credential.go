package entity

import "time"

// Credential is a stored supplier login owned by one user.
type Credential struct {
	ID           int64
	OwnerUserID  int64
	SupplierName string
	OfficeID     string
	LoginID      string
	Password     string // stored via the secret codec
	URL          string
	DateCreated  time.Time
	LastReset    *time.Time
}

// NewCredential carries the fields needed to store a credential.
type NewCredential struct {
	ID           int64
	OwnerUserID  int64
	SupplierName string
	OfficeID     string
	LoginID      string
	Password     string
	URL          string
	DateCreated  time.Time
	LastReset    *time.Time
}

// FieldUpdate applies a single-column change to an owned credential.
type FieldUpdate struct {
	ID          int64
	OwnerUserID int64
	Field       UpdatableField
	Value       string
	// LastReset is set when Field is the password, refreshing the reminder clock.
	LastReset *time.Time
}
