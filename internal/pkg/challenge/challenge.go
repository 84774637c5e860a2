// Package challenge issues and verifies email-delivered verification codes.
//
// Each code lives in a (session, slot) cell: a session identifies who is being
// challenged and a slot separates independent flows so that a code requested
// for one purpose can never satisfy another. Issuing into an occupied cell
// overwrites the previous code.
package challenge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/hash"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/danudoro/supplyvault/internal/pkg/otp"
)

// Slot separates independent verification flows within one session.
type Slot string

const (
	// SlotPasswordReset gates account password resets.
	SlotPasswordReset Slot = "password_reset"
	// SlotAction gates credential reveal, modify, delete and export.
	SlotAction Slot = "action"
)

// ErrNotFound indicates no active code exists for the (session, slot) cell.
var ErrNotFound = errors.New("challenge: no active code")

// ErrDelivery indicates the code could not be delivered to the recipient.
var ErrDelivery = errors.New("challenge: code delivery failed")

// Record is the stored state of an issued code.
type Record struct {
	// CodeHash is the HMAC of the issued code.
	CodeHash string `json:"code_hash"`
	// Destination is the email address the code was sent to.
	Destination string `json:"destination"`
	// IssuedAt is when the code was issued.
	IssuedAt time.Time `json:"issued_at"`
}

// Store persists challenge records with a TTL.
type Store interface {
	// Save writes the record for the (session, slot) cell, replacing any
	// previous record.
	Save(ctx context.Context, session string, slot Slot, rec Record, ttl time.Duration) error
	// Get returns the record for the cell, or ErrNotFound.
	Get(ctx context.Context, session string, slot Slot) (*Record, error)
}

const (
	mailSubject  = "Your OTP Code"
	mailBodyPre  = "Your OTP is "
	mailBodyPost = ". It will expire shortly."
)

// DefaultTTL is the code lifetime used when none is configured.
const DefaultTTL = 10 * time.Minute

// Config holds dependencies for building an Engine.
type Config struct {
	// Store persists issued codes.
	Store Store
	// Mailer delivers codes to recipients.
	Mailer mail.Mail
	// Generator produces the codes.
	Generator otp.Generator
	// HMAC hashes codes before storage.
	HMAC hash.Hash
	// Clock provides the current time.
	Clock clock.Clocker
	// TTL is the code lifetime.
	TTL time.Duration
}

// Engine issues codes over email and verifies user-supplied codes.
type Engine struct {
	store  Store
	mailer mail.Mail
	gen    otp.Generator
	hmac   hash.Hash
	clock  clock.Clocker
	ttl    time.Duration
}

// NewEngine builds an Engine from the config.
func NewEngine(cfg Config) *Engine {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Engine{
		store:  cfg.Store,
		mailer: cfg.Mailer,
		gen:    cfg.Generator,
		hmac:   cfg.HMAC,
		clock:  cfg.Clock,
		ttl:    ttl,
	}
}

// Issue generates a code, emails it to the recipient and stores its hash.
//
// The code is stored only after delivery succeeds, so a failed send leaves the
// cell unchanged.
func (e *Engine) Issue(ctx context.Context, session string, slot Slot, email string) error {
	code, err := e.gen.Generate()
	if err != nil {
		return err
	}

	if err := e.mailer.Send(ctx, mail.Message{
		To:       []string{email},
		Subject:  mailSubject,
		TextBody: mailBodyPre + code + mailBodyPost,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver verification code", "slot", slot, "error", err)
		return errors.Join(ErrDelivery, err)
	}

	codeHash, err := e.hmac.Hash(code)
	if err != nil {
		return err
	}

	return e.store.Save(ctx, session, slot, Record{
		CodeHash:    string(codeHash),
		Destination: email,
		IssuedAt:    e.clock.Now(),
	}, e.ttl)
}

// Destination returns the email the active code for the cell was sent to.
func (e *Engine) Destination(ctx context.Context, session string, slot Slot) (string, error) {
	rec, err := e.store.Get(ctx, session, slot)
	if err != nil {
		return "", err
	}

	return rec.Destination, nil
}

// Verify reports whether the code matches the active code for the cell.
//
// Verification does not consume the code; it stays valid until its TTL ends or
// a new code replaces it. A missing or expired cell returns ErrNotFound.
func (e *Engine) Verify(ctx context.Context, session string, slot Slot, code string) (bool, error) {
	rec, err := e.store.Get(ctx, session, slot)
	if err != nil {
		return false, err
	}

	return e.hmac.Verify(rec.CodeHash, code), nil
}
