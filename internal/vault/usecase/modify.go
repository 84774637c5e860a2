package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/vault/entity"
)

type ModifyRequestInput struct {
	CredentialID int64 `validate:"required,gt=0"`
}

// ModifyRequest emails a verification code that unlocks a single field update.
func (s *Usecase) ModifyRequest(ctx context.Context, in ModifyRequestInput) error {
	ctx, span := s.startSpan(ctx, "ModifyRequest")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetByIDOwner(ctx, in.CredentialID, clm.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("credential not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get credential", "user_id", clm.UserID, "credential_id", in.CredentialID, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueActionChallenge(ctx, clm)
}

type ModifyConfirmInput struct {
	CredentialID int64  `validate:"required,gt=0"`
	Field        string `validate:"required"`
	Value        string `validate:"required"`
	Code         string `validate:"required"`
}

// ModifyConfirm verifies the code and applies a single-column update. The
// field name must come from the closed set; updating the password also
// refreshes the reset clock.
func (s *Usecase) ModifyConfirm(ctx context.Context, in ModifyConfirmInput) error {
	ctx, span := s.startSpan(ctx, "ModifyConfirm")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	field := entity.ParseUpdatableField(in.Field)
	if field.IsUnknown() {
		return goerror.NewInvalidInput(nil, "field", "must be one of supplier_name, office_id, login_id, password, url")
	}

	if err := s.verifyActionChallenge(ctx, clm, in.Code); err != nil {
		return err
	}

	update := entity.FieldUpdate{
		ID:          in.CredentialID,
		OwnerUserID: clm.UserID,
		Field:       field,
		Value:       in.Value,
	}

	if field == entity.FieldPassword {
		stored, err := s.secret.Encode(in.Value)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encode credential password", "user_id", clm.UserID, "credential_id", in.CredentialID, "error", err)
			return goerror.NewServer(err)
		}
		update.Value = stored

		now := s.clock.Now()
		update.LastReset = &now
	}

	if err := s.repoDB.UpdateField(ctx, update); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("credential not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo update credential field", "user_id", clm.UserID, "credential_id", in.CredentialID, "field", field.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
