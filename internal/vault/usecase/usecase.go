package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/secret"
	"github.com/danudoro/supplyvault/internal/pkg/storage"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	"go.opentelemetry.io/otel/trace"
)

type CredentialsImportedEvent struct {
	UserID   int64
	Email    string
	Imported int
	Skipped  int
	FileName string
}

type repoMessaging interface {
	PublishCredentialsImported(ctx context.Context, msg CredentialsImportedEvent) error
}

type repoDB interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.Credential, error)
	GetByIDOwner(ctx context.Context, id, ownerID int64) (*entity.Credential, error)

	Create(ctx context.Context, in entity.NewCredential) error
	BulkCreate(ctx context.Context, in []entity.NewCredential) (int, error)
	UpdateField(ctx context.Context, in entity.FieldUpdate) error
	DeleteByIDsOwner(ctx context.Context, ids []int64, ownerID int64) (int64, error)
}

type challenger interface {
	Issue(ctx context.Context, session string, slot challenge.Slot, email string) error
	Verify(ctx context.Context, session string, slot challenge.Slot, code string) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	challenge     challenger
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	secret        secret.Codec
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Challenge     challenger
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	Secret        secret.Codec
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		challenge:     dep.Challenge,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		secret:        dep.Secret,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("vault.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// issueActionChallenge emails a code bound to the caller's token session so a
// later confirm call can prove possession of the inbox.
func (s *Usecase) issueActionChallenge(ctx context.Context, clm *jwt.Claims) error {
	if err := s.challenge.Issue(ctx, clm.ID, challenge.SlotAction, clm.UserEmail); err != nil {
		if errors.Is(err, challenge.ErrDelivery) {
			return goerror.NewBusiness("failed to deliver verification code", goerror.CodeInternal)
		}
		slog.ErrorContext(ctx, "failed to issue action challenge", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// verifyActionChallenge checks the code against the caller's token session.
func (s *Usecase) verifyActionChallenge(ctx context.Context, clm *jwt.Claims, code string) error {
	ok, err := s.challenge.Verify(ctx, clm.ID, challenge.SlotAction, code)
	if errors.Is(err, challenge.ErrNotFound) {
		return goerror.NewBusiness("verification code expired or not requested", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify action challenge", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		return goerror.NewBusiness("invalid verification code", goerror.CodeUnauthorized)
	}

	return nil
}

func maskPassword(p string) string {
	const mask = "********"
	if p == "" {
		return ""
	}
	return mask
}
