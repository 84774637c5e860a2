package usecase

import (
	"context"

	"github.com/danudoro/supplyvault/internal/identity/entity"
	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/secret"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID   int64
	Username string
	Email    string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)

	CreateUser(ctx context.Context, in entity.NewUser) error
	UpdateUserPassword(ctx context.Context, id int64, password string) error
}

type challenger interface {
	Issue(ctx context.Context, session string, slot challenge.Slot, email string) error
	Verify(ctx context.Context, session string, slot challenge.Slot, code string) (bool, error)
	Destination(ctx context.Context, session string, slot challenge.Slot) (string, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	challenge     challenger
	validator     validator.Validator
	cfg           config.Config
	secret        secret.Codec
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Challenge     challenger
	Validator     validator.Validator
	Config        config.Config
	Secret        secret.Codec
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		challenge:     dep.Challenge,
		validator:     dep.Validator,
		cfg:           dep.Config,
		secret:        dep.Secret,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
