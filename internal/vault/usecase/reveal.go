package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type RevealRequestInput struct {
	CredentialID int64 `validate:"required,gt=0"`
}

// RevealRequest emails a verification code that unlocks a single unmasked read.
func (s *Usecase) RevealRequest(ctx context.Context, in RevealRequestInput) error {
	ctx, span := s.startSpan(ctx, "RevealRequest")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	// The row must exist and belong to the caller before a code is sent.
	if _, err := s.repoDB.GetByIDOwner(ctx, in.CredentialID, clm.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("credential not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get credential", "user_id", clm.UserID, "credential_id", in.CredentialID, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueActionChallenge(ctx, clm)
}

type RevealConfirmInput struct {
	CredentialID int64  `validate:"required,gt=0"`
	Code         string `validate:"required"`
}

type RevealConfirmOutput struct {
	SupplierName string
	LoginID      string
	Password     string // clear text
	URL          string
}

// RevealConfirm verifies the code and returns the clear-text password.
func (s *Usecase) RevealConfirm(ctx context.Context, in RevealConfirmInput) (*RevealConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "RevealConfirm")
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

	cred, err := s.repoDB.GetByIDOwner(ctx, in.CredentialID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("credential not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential", "user_id", clm.UserID, "credential_id", in.CredentialID, "error", err)
		return nil, goerror.NewServer(err)
	}

	plain, err := s.secret.Decode(cred.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode credential password", "user_id", clm.UserID, "credential_id", cred.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RevealConfirmOutput{
		SupplierName: cred.SupplierName,
		LoginID:      cred.LoginID,
		Password:     plain,
		URL:          cred.URL,
	}, nil
}
