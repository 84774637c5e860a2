package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/hash"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	records map[string]Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Record)}
}

func (s *memStore) Save(_ context.Context, session string, slot Slot, rec Record, _ time.Duration) error {
	s.records[string(slot)+":"+session] = rec
	return nil
}

func (s *memStore) Get(_ context.Context, session string, slot Slot) (*Record, error) {
	rec, ok := s.records[string(slot)+":"+session]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Close() error { return nil }

type fixedGen struct {
	codes []string
	calls int
}

func (g *fixedGen) Generate() (string, error) {
	code := g.codes[g.calls%len(g.codes)]
	g.calls++
	return code, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestEngine(store Store, mailer mail.Mail, gen *fixedGen) *Engine {
	return NewEngine(Config{
		Store:     store,
		Mailer:    mailer,
		Generator: gen,
		HMAC:      hash.NewHMACSHA256("test-secret"),
		Clock:     fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		TTL:       10 * time.Minute,
	})
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	mailer := &fakeMailer{}
	engine := newTestEngine(store, mailer, &fixedGen{codes: []string{"123456"}})

	require.NoError(t, engine.Issue(ctx, "sess-1", SlotAction, "user@example.com"))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"user@example.com"}, mailer.sent[0].To)
	assert.Equal(t, "Your OTP Code", mailer.sent[0].Subject)
	assert.Equal(t, "Your OTP is 123456. It will expire shortly.", mailer.sent[0].TextBody)

	ok, err := engine.Verify(ctx, "sess-1", SlotAction, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = engine.Verify(ctx, "sess-1", SlotAction, "654321")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(newMemStore(), &fakeMailer{}, &fixedGen{codes: []string{"123456"}})

	require.NoError(t, engine.Issue(ctx, "sess-1", SlotAction, "user@example.com"))

	for range 3 {
		ok, err := engine.Verify(ctx, "sess-1", SlotAction, "123456")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(newMemStore(), &fakeMailer{}, &fixedGen{codes: []string{"111111", "222222"}})

	require.NoError(t, engine.Issue(ctx, "sess-1", SlotPasswordReset, "user@example.com"))
	require.NoError(t, engine.Issue(ctx, "sess-1", SlotAction, "user@example.com"))

	ok, err := engine.Verify(ctx, "sess-1", SlotPasswordReset, "111111")
	require.NoError(t, err)
	assert.True(t, ok)

	// The action slot holds its own code, so the reset code fails there.
	ok, err = engine.Verify(ctx, "sess-1", SlotAction, "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = engine.Verify(ctx, "sess-1", SlotAction, "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReissueReplacesCode(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(newMemStore(), &fakeMailer{}, &fixedGen{codes: []string{"111111", "222222"}})

	require.NoError(t, engine.Issue(ctx, "sess-1", SlotAction, "user@example.com"))
	require.NoError(t, engine.Issue(ctx, "sess-1", SlotAction, "user@example.com"))

	ok, err := engine.Verify(ctx, "sess-1", SlotAction, "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = engine.Verify(ctx, "sess-1", SlotAction, "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIssueDeliveryFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	engine := newTestEngine(store, mailer, &fixedGen{codes: []string{"123456"}})

	err := engine.Issue(ctx, "sess-1", SlotAction, "user@example.com")
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Empty(t, store.records)

	_, err = engine.Verify(ctx, "sess-1", SlotAction, "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyUnknownSession(t *testing.T) {
	engine := newTestEngine(newMemStore(), &fakeMailer{}, &fixedGen{codes: []string{"123456"}})

	_, err := engine.Verify(context.Background(), "missing", SlotAction, "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestination(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(newMemStore(), &fakeMailer{}, &fixedGen{codes: []string{"123456"}})

	require.NoError(t, engine.Issue(ctx, "sess-1", SlotPasswordReset, "user@example.com"))

	dest, err := engine.Destination(ctx, "sess-1", SlotPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", dest)

	_, err = engine.Destination(ctx, "other", SlotPasswordReset)
	assert.ErrorIs(t, err, ErrNotFound)
}
