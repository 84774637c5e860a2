package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danudoro/supplyvault/internal/identity/entity"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	existing, err := s.repoDB.GetUserByUsernameOrEmail(ctx, in.Username, in.Email)
	if err == nil {
		if existing.Username == in.Username {
			return goerror.NewBusiness("Username already taken", goerror.CodeConflict)
		}
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username or email", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	stored, err := s.secret.Encode(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode account password", "error", err)
		return goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:       s.uid.Generate(),
		Username: in.Username,
		Email:    in.Email,
		Password: stored,
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Username or email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   newUser.ID,
		Username: newUser.Username,
		Email:    newUser.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	return nil
}
