package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

type CredentialItem struct {
	ID           int64
	SupplierName string
	OfficeID     string
	LoginID      string
	Password     string // masked
	URL          string
	DateCreated  time.Time
	LastReset    *time.Time
}

type ListOutput struct {
	Credentials []CredentialItem
}

// List returns all credentials of the caller, newest first, passwords masked.
func (s *Usecase) List(ctx context.Context) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	creds, err := s.repoDB.ListByOwner(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list credentials", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	items := make([]CredentialItem, 0, len(creds))
	for _, c := range creds {
		items = append(items, CredentialItem{
			ID:           c.ID,
			SupplierName: c.SupplierName,
			OfficeID:     c.OfficeID,
			LoginID:      c.LoginID,
			Password:     maskPassword(c.Password),
			URL:          c.URL,
			DateCreated:  c.DateCreated,
			LastReset:    c.LastReset,
		})
	}

	return &ListOutput{Credentials: items}, nil
}
