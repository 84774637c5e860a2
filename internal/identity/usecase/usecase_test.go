package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/danudoro/supplyvault/internal/identity/entity"
	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoDB struct {
	users           []entity.User
	created         []entity.NewUser
	passwordUpdates map[int64]string

	createErr error
}

func (r *fakeRepoDB) find(match func(entity.User) bool) (*entity.User, error) {
	for _, u := range r.users {
		if match(u) {
			uu := u
			return &uu, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *fakeRepoDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *fakeRepoDB) GetUserByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username || u.Email == email })
}

func (r *fakeRepoDB) CreateUser(_ context.Context, in entity.NewUser) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, in)
	return nil
}

func (r *fakeRepoDB) UpdateUserPassword(_ context.Context, id int64, password string) error {
	if _, err := r.GetUserByID(context.Background(), id); err != nil {
		return err
	}
	if r.passwordUpdates == nil {
		r.passwordUpdates = make(map[int64]string)
	}
	r.passwordUpdates[id] = password
	return nil
}

type fakeMessaging struct {
	events []UserRegisteredEvent
}

func (m *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	m.events = append(m.events, msg)
	return nil
}

type issuedChallenge struct {
	session string
	slot    challenge.Slot
	email   string
}

type fakeChallenger struct {
	issued      []issuedChallenge
	issueErr    error
	verifyOK    bool
	verifyErr   error
	destination string
	destErr     error
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

func (c *fakeChallenger) Destination(_ context.Context, _ string, _ challenge.Slot) (string, error) {
	if c.destErr != nil {
		return "", c.destErr
	}
	return c.destination, nil
}

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

type uuidStub struct{ value string }

func (s uuidStub) Generate() string { return s.value }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type cfgStub struct{ config.Config }

func (cfgStub) GetString(string) string { return "" }

type fakeJWT struct {
	token     string
	generated []int64
}

func (j *fakeJWT) Generate(uid int64, _ string) (string, error) {
	j.generated = append(j.generated, uid)
	return j.token, nil
}

func (j *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type fixture struct {
	repo *fakeRepoDB
	msg  *fakeMessaging
	ch   *fakeChallenger
	jwt  *fakeJWT
	uc   *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		repo: &fakeRepoDB{},
		msg:  &fakeMessaging{},
		ch:   &fakeChallenger{verifyOK: true, destination: "user@example.com"},
		jwt:  &fakeJWT{token: "signed-token"},
	}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Challenge:     f.ch,
		Validator:     v,
		Config:        cfgStub{},
		Secret:        fakeCodec{},
		UID:           &seqID{},
		UUID:          uuidStub{value: "challenge-uuid"},
		Clock:         fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		JWT:           f.jwt,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func existingUser() entity.User {
	return entity.User{
		ID:       7,
		Username: "danu",
		Email:    "user@example.com",
		Password: "enc:hunter2!",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "danu",
		Email:    "User@Example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	require.Len(t, f.repo.created, 1)
	created := f.repo.created[0]
	assert.Equal(t, "danu", created.Username)
	assert.Equal(t, "user@example.com", created.Email)
	assert.Equal(t, "enc:Sup3rSecret!", created.Password)

	require.Len(t, f.msg.events, 1)
	assert.Equal(t, created.ID, f.msg.events[0].UserID)
}

func TestRegisterUsernameTaken(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "danu",
		Email:    "fresh@example.com",
		Password: "Sup3rSecret!",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.created)
}

func TestRegisterEmailTaken(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "someone-else",
		Email:    "user@example.com",
		Password: "Sup3rSecret!",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.created)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		Username: "danu",
		Email:    "not-an-email",
		Password: "Sup3rSecret!",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	out, err := f.uc.Login(context.Background(), LoginInput{
		Username: "danu",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, []int64{7}, f.jwt.generated)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	_, err := f.uc.Login(context.Background(), LoginInput{
		Username: "danu",
		Password: "wrong",
	})
	assert.Error(t, err)
	assert.Empty(t, f.jwt.generated)
}

func TestLoginUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Username: "ghost",
		Password: "whatever",
	})
	assert.Error(t, err)
}

func TestPasswordForgot(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "challenge-uuid", out.ChallengeID)

	require.Len(t, f.ch.issued, 1)
	assert.Equal(t, "challenge-uuid", f.ch.issued[0].session)
	assert.Equal(t, challenge.SlotPasswordReset, f.ch.issued[0].slot)
	assert.Equal(t, "user@example.com", f.ch.issued[0].email)
}

func TestPasswordForgotUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "ghost@example.com"})
	assert.Error(t, err)
	assert.Empty(t, f.ch.issued)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
		ChallengeID: "challenge-uuid",
		Code:        "123456",
		NewPassword: "N3wSecret!!",
	})
	require.NoError(t, err)
	assert.Equal(t, "enc:N3wSecret!!", f.repo.passwordUpdates[7])
}

func TestPasswordResetWrongCode(t *testing.T) {
	f := newFixture(t)
	f.ch.verifyOK = false
	f.repo.users = []entity.User{existingUser()}

	err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
		ChallengeID: "challenge-uuid",
		Code:        "000000",
		NewPassword: "N3wSecret!!",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.passwordUpdates)
}

func TestPasswordResetExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	f.ch.verifyErr = challenge.ErrNotFound
	f.repo.users = []entity.User{existingUser()}

	err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
		ChallengeID: "stale-uuid",
		Code:        "123456",
		NewPassword: "N3wSecret!!",
	})
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	f.repo.users = []entity.User{existingUser()}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ID: "sess-1"},
		UserID:           7,
		UserEmail:        "user@example.com",
	})

	out, err := f.uc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "danu", out.Username)
	assert.Equal(t, "user@example.com", out.Email)
}

func TestProfileRequiresAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Profile(context.Background())
	assert.Error(t, err)
}
