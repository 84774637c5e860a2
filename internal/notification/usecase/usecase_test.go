package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (m *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakeIdem runs each key once and reports later calls as completed.
type fakeIdem struct {
	seen map[string]struct{}
	keys []string
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.seen == nil {
		f.seen = make(map[string]struct{})
	}
	if _, ok := f.seen[key]; ok {
		return idempotency.ErrAlreadyCompleted
	}
	f.keys = append(f.keys, key)

	if err := fn(ctx); err != nil {
		return err
	}
	f.seen[key] = struct{}{}
	return nil
}

type cfgStub struct{ config.Config }

func (cfgStub) GetString(key string) string {
	switch key {
	case "app.name":
		return "SupplyVault"
	case "mail.support_email":
		return "support@supplyvault.app"
	default:
		return ""
	}
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	mail *fakeMail
	idem *fakeIdem
	uc   *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		mail: &fakeMail{},
		idem: &fakeIdem{},
	}
	f.uc = NewNotification(Dependency{
		RepoMail:    f.mail,
		Config:      cfgStub{},
		Clock:       fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Validator:   v,
		Idempotency: f.idem,
		Instrument:  instrument.NewNoop(),
	})

	return f
}

func TestConsumeUserRegistered(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   7,
		Username: "danu",
		Email:    "user@example.com",
	})
	require.NoError(t, err)

	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, []string{"user@example.com"}, msg.To)
	assert.Equal(t, "Welcome to SupplyVault", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "danu")
	assert.Contains(t, msg.HTMLBody, "support@supplyvault.app")
}

func TestConsumeUserRegisteredDeduplicates(t *testing.T) {
	f := newFixture(t)
	in := ConsumeUserRegisteredInput{UserID: 7, Username: "danu", Email: "user@example.com"}

	require.NoError(t, f.uc.ConsumeUserRegistered(context.Background(), in))
	require.NoError(t, f.uc.ConsumeUserRegistered(context.Background(), in))

	assert.Len(t, f.mail.sent, 1)
}

func TestConsumeUserRegisteredInvalidPayload(t *testing.T) {
	f := newFixture(t)

	// Malformed events are dropped, not retried.
	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID: 0,
		Email:  "nope",
	})
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
}

func TestConsumeUserRegisteredMailFailure(t *testing.T) {
	f := newFixture(t)
	f.mail.err = errors.New("smtp down")

	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   7,
		Username: "danu",
		Email:    "user@example.com",
	})
	assert.Error(t, err)
}

func TestConsumeCredentialsImported(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumeCredentialsImported(context.Background(), ConsumeCredentialsImportedInput{
		UserID:   7,
		Email:    "user@example.com",
		Imported: 12,
		Skipped:  3,
		FileName: "suppliers.csv",
	})
	require.NoError(t, err)

	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, "Your credential import has finished", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "suppliers.csv")
	assert.Contains(t, msg.HTMLBody, "12")
	assert.Contains(t, msg.HTMLBody, "3")
}

func TestConsumeCredentialsImportedInvalidPayload(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumeCredentialsImported(context.Background(), ConsumeCredentialsImportedInput{
		UserID: 7,
		Email:  "",
	})
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
}
