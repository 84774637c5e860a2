package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/vault/entity"
)

type AddInput struct {
	SupplierName string `validate:"required,max=255"`
	OfficeID     string `validate:"omitempty,max=100"`
	LoginID      string `validate:"omitempty,max=255"`
	Password     string `validate:"required"`
	URL          string `validate:"omitempty,max=2048"`
}

type AddOutput struct {
	ID int64
}

func (s *Usecase) Add(ctx context.Context, in AddInput) (*AddOutput, error) {
	ctx, span := s.startSpan(ctx, "Add")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	in.SupplierName = strings.TrimSpace(in.SupplierName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	stored, err := s.secret.Encode(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode credential password", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	cred := entity.NewCredential{
		ID:           s.uid.Generate(),
		OwnerUserID:  clm.UserID,
		SupplierName: in.SupplierName,
		OfficeID:     strings.TrimSpace(in.OfficeID),
		LoginID:      strings.TrimSpace(in.LoginID),
		Password:     stored,
		URL:          strings.TrimSpace(in.URL),
		DateCreated:  now,
		LastReset:    &now,
	}

	if err := s.repoDB.Create(ctx, cred); err != nil {
		slog.ErrorContext(ctx, "failed to repo create credential", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AddOutput{ID: cred.ID}, nil
}
