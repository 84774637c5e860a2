package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	"github.com/samber/lo"
)

type RemindersOutput struct {
	Reminders []entity.Reminder
}

// Reminders returns the caller's credentials whose password reset deadline
// falls within the next seven days, soonest first.
func (s *Usecase) Reminders(ctx context.Context) (*RemindersOutput, error) {
	ctx, span := s.startSpan(ctx, "Reminders")
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

	now := s.clock.Now()
	due := lo.Filter(creds, func(c entity.Credential, _ int) bool {
		return c.DueForReset(now)
	})

	reminders := lo.Map(due, func(c entity.Credential, _ int) entity.Reminder {
		expiry, _ := c.ExpiresAt()
		return entity.Reminder{
			CredentialID: c.ID,
			SupplierName: c.SupplierName,
			ExpiresAt:    expiry,
		}
	})

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ExpiresAt.Before(reminders[j].ExpiresAt)
	})

	return &RemindersOutput{Reminders: reminders}, nil
}
