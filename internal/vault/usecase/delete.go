package usecase

import (
	"context"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

// DeleteRequest emails a verification code that unlocks a bulk delete.
func (s *Usecase) DeleteRequest(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "DeleteRequest")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	return s.issueActionChallenge(ctx, clm)
}

type DeleteConfirmInput struct {
	CredentialIDs []int64 `validate:"required,min=1,max=1000,dive,gt=0"`
	Code          string  `validate:"required"`
}

type DeleteConfirmOutput struct {
	Deleted int64
}

// DeleteConfirm verifies the code and deletes the listed credentials. Rows the
// caller does not own are ignored; the returned count reflects rows actually
// removed.
func (s *Usecase) DeleteConfirm(ctx context.Context, in DeleteConfirmInput) (*DeleteConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "DeleteConfirm")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.verifyActionChallenge(ctx, clm, in.Code); err != nil {
		return nil, err
	}

	deleted, err := s.repoDB.DeleteByIDsOwner(ctx, in.CredentialIDs, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete credentials", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DeleteConfirmOutput{Deleted: deleted}, nil
}
