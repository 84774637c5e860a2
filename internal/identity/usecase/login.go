package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	user, err := s.repoDB.GetUserByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	stored, err := s.secret.Decode(user.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode account password", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(in.Password)) != 1 {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	acToken, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: acToken}, nil
}
