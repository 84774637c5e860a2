package usecase

import (
	"context"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

// ExportRequest emails a verification code that unlocks a full export.
// Exports are gated because they include unmasked passwords.
func (s *Usecase) ExportRequest(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ExportRequest")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	return s.issueActionChallenge(ctx, clm)
}

type ExportConfirmInput struct {
	Code string `validate:"required"`
}

type ExportCredential struct {
	ID           int64
	SupplierName string
	OfficeID     string
	LoginID      string
	Password     string // clear text
	URL          string
}

type ExportConfirmOutput struct {
	Credentials []ExportCredential
}

// ExportConfirm verifies the code and returns every credential of the caller
// with clear-text passwords.
func (s *Usecase) ExportConfirm(ctx context.Context, in ExportConfirmInput) (*ExportConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "ExportConfirm")
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

	creds, err := s.repoDB.ListByOwner(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list credentials", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := make([]ExportCredential, 0, len(creds))
	for _, c := range creds {
		plain, err := s.secret.Decode(c.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to decode credential password", "user_id", clm.UserID, "credential_id", c.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		out = append(out, ExportCredential{
			ID:           c.ID,
			SupplierName: c.SupplierName,
			OfficeID:     c.OfficeID,
			LoginID:      c.LoginID,
			Password:     plain,
			URL:          c.URL,
		})
	}

	return &ExportConfirmOutput{Credentials: out}, nil
}
