package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type PasswordResetInput struct {
	ChallengeID string `validate:"required"`
	Code        string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	ok, err := s.challenge.Verify(ctx, in.ChallengeID, challenge.SlotPasswordReset, in.Code)
	if errors.Is(err, challenge.ErrNotFound) {
		return goerror.NewBusiness("verification code expired or not requested", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify password reset challenge", "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		return goerror.NewBusiness("invalid verification code", goerror.CodeUnauthorized)
	}

	email, err := s.challenge.Destination(ctx, in.ChallengeID, challenge.SlotPasswordReset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve password reset destination", "error", err)
		return goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("email not registered", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "error", err)
		return goerror.NewServer(err)
	}

	stored, err := s.secret.Encode(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode account password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPassword(ctx, user.ID, stored); err != nil {
		slog.ErrorContext(ctx, "failed to update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
