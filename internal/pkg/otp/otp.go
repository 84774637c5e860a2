// Package otp generates short numeric one-time codes for email delivery.
package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// DefaultDigits is the code length used when none is configured.
const DefaultDigits = 6

// ErrInvalidDigits is returned when the configured code length is not usable.
var ErrInvalidDigits = errors.New("otp: digits must be between 4 and 10")

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a new random code.
	Generate() (string, error)
}

// Numeric generates uniformly random numeric codes of a fixed length.
type Numeric struct {
	digits int
}

// NewNumeric creates a numeric code generator with the given length.
func NewNumeric(digits int) (*Numeric, error) {
	if digits == 0 {
		digits = DefaultDigits
	}
	if digits < 4 || digits > 10 {
		return nil, ErrInvalidDigits
	}

	return &Numeric{digits: digits}, nil
}

// Generate returns a random code, zero-padded to the configured length.
func (n *Numeric) Generate() (string, error) {
	out := make([]byte, n.digits)
	for i := range out {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		out[i] = byte('0' + d.Int64())
	}

	return string(out), nil
}
