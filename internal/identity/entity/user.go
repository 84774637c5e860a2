package entity

import "time"

// User is a vault account holder.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string // stored via the secret codec
	CreatedAt time.Time
}

// NewUser carries the fields needed to create an account.
type NewUser struct {
	ID       int64
	Username string
	Email    string
	Password string
}
