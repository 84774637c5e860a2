package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	ChallengeID string
}

// PasswordForgot issues a verification code to the account email. The returned
// challenge id is the session the caller must present to PasswordReset.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unavailable user", "email", in.Email)
		return nil, goerror.NewBusiness("email not registered", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	challengeID := s.uuid.Generate()
	if err := s.challenge.Issue(ctx, challengeID, challenge.SlotPasswordReset, user.Email); err != nil {
		if errors.Is(err, challenge.ErrDelivery) {
			return nil, goerror.NewBusiness("failed to deliver verification code", goerror.CodeInternal)
		}
		slog.ErrorContext(ctx, "failed to issue password reset challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordForgotOutput{ChallengeID: challengeID}, nil
}
