package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/storage"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoDB struct {
	creds       []entity.Credential
	created     []entity.NewCredential
	bulkCreated []entity.NewCredential
	updates     []entity.FieldUpdate
	deletedIDs  []int64

	listErr   error
	getErr    error
	createErr error
	bulkErr   error
	updateErr error
	deleteErr error
}

func (r *fakeRepoDB) ListByOwner(_ context.Context, ownerID int64) ([]entity.Credential, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []entity.Credential
	for _, c := range r.creds {
		if c.OwnerUserID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepoDB) GetByIDOwner(_ context.Context, id, ownerID int64) (*entity.Credential, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, c := range r.creds {
		if c.ID == id && c.OwnerUserID == ownerID {
			cc := c
			return &cc, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) Create(_ context.Context, in entity.NewCredential) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, in)
	return nil
}

func (r *fakeRepoDB) BulkCreate(_ context.Context, in []entity.NewCredential) (int, error) {
	if r.bulkErr != nil {
		return 0, r.bulkErr
	}
	r.bulkCreated = append(r.bulkCreated, in...)
	return len(in), nil
}

func (r *fakeRepoDB) UpdateField(_ context.Context, in entity.FieldUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, in)
	return nil
}

func (r *fakeRepoDB) DeleteByIDsOwner(_ context.Context, ids []int64, ownerID int64) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.deletedIDs = append(r.deletedIDs, ids...)

	requested := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}

	var kept []entity.Credential
	var deleted int64
	for _, c := range r.creds {
		_, asked := requested[c.ID]
		if asked && c.OwnerUserID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.creds = kept
	return deleted, nil
}

type fakeMessaging struct {
	events []CredentialsImportedEvent
	err    error
}

func (m *fakeMessaging) PublishCredentialsImported(_ context.Context, msg CredentialsImportedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, msg)
	return nil
}

type issuedChallenge struct {
	session string
	slot    challenge.Slot
	email   string
}

type fakeChallenger struct {
	issued    []issuedChallenge
	issueErr  error
	verifyOK  bool
	verifyErr error
}

func (c *fakeChallenger) Issue(_ context.Context, session string, slot challenge.Slot, email string) error {
	if c.issueErr != nil {
		return c.issueErr
	}
	c.issued = append(c.issued, issuedChallenge{session: session, slot: slot, email: email})
	return nil
}

func (c *fakeChallenger) Verify(_ context.Context, _ string, _ challenge.Slot, _ string) (bool, error) {
	if c.verifyErr != nil {
		return false, c.verifyErr
	}
	return c.verifyOK, nil
}

// fakeCodec marks encoded values so tests can see which direction a password
// passed through.
type fakeCodec struct{}

func (fakeCodec) Encode(plain string) (string, error) {
	return "enc:" + plain, nil
}

func (fakeCodec) Decode(stored string) (string, error) {
	return strings.TrimPrefix(stored, "enc:"), nil
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type cfgStub struct{ config.Config }

func (cfgStub) GetString(string) string { return "" }

type storageStub struct{ storage.Storage }

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo *fakeRepoDB
	msg  *fakeMessaging
	ch   *fakeChallenger
	uc   *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		repo: &fakeRepoDB{},
		msg:  &fakeMessaging{},
		ch:   &fakeChallenger{verifyOK: true},
	}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Challenge:     f.ch,
		Validator:     v,
		Config:        cfgStub{},
		Storage:       storageStub{},
		Secret:        fakeCodec{},
		UID:           &seqID{},
		Clock:         fixedClock{now: testNow},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func authCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ID: "sess-1"},
		UserID:           7,
		UserEmail:        "user@example.com",
	})
}

func TestListRequiresAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.List(context.Background())
	assert.Error(t, err)
}

func TestListMasksPasswords(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{
		{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel", Password: "enc:pw1", DateCreated: testNow},
		{ID: 2, OwnerUserID: 7, SupplierName: "Globex", Password: "", DateCreated: testNow},
		{ID: 3, OwnerUserID: 99, SupplierName: "Other User", Password: "enc:pw3", DateCreated: testNow},
	}

	out, err := f.uc.List(authCtx())
	require.NoError(t, err)
	require.Len(t, out.Credentials, 2)
	assert.Equal(t, "********", out.Credentials[0].Password)
	assert.Equal(t, "", out.Credentials[1].Password)
}

func TestAdd(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Add(authCtx(), AddInput{
		SupplierName: "  Acme Travel  ",
		LoginID:      "agent-42",
		Password:     "hunter2",
		URL:          "https://portal.acme.test",
	})
	require.NoError(t, err)

	require.Len(t, f.repo.created, 1)
	created := f.repo.created[0]
	assert.Equal(t, out.ID, created.ID)
	assert.Equal(t, int64(7), created.OwnerUserID)
	assert.Equal(t, "Acme Travel", created.SupplierName)
	assert.Equal(t, "enc:hunter2", created.Password)
	assert.Equal(t, testNow, created.DateCreated)
	require.NotNil(t, created.LastReset)
	assert.Equal(t, testNow, *created.LastReset)
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Add(authCtx(), AddInput{Password: "hunter2"})
	assert.Error(t, err)
	assert.Empty(t, f.repo.created)
}

func TestReminders(t *testing.T) {
	f := newFixture(t)
	at := func(daysAgo int) *time.Time {
		ts := testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		return &ts
	}
	f.repo.creds = []entity.Credential{
		{ID: 1, OwnerUserID: 7, SupplierName: "Fresh", LastReset: at(1)},
		{ID: 2, OwnerUserID: 7, SupplierName: "Due Later", LastReset: at(24)},
		{ID: 3, OwnerUserID: 7, SupplierName: "Due Soon", LastReset: at(28)},
		{ID: 4, OwnerUserID: 7, SupplierName: "Never Reset"},
	}

	out, err := f.uc.Reminders(authCtx())
	require.NoError(t, err)

	require.Len(t, out.Reminders, 2)
	assert.Equal(t, "Due Soon", out.Reminders[0].SupplierName)
	assert.Equal(t, "Due Later", out.Reminders[1].SupplierName)
	assert.True(t, out.Reminders[0].ExpiresAt.Before(out.Reminders[1].ExpiresAt))
}
