package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
)

const welcomeSubject = "Welcome to {{.app_name}}"

const welcomeBodyHTML = `<html>
<body>
	<p>Hi {{.username}},</p>
	<p>Your {{.app_name}} account is ready. Sign in to start storing your supplier credentials in one place.</p>
	<p>If you did not create this account, contact us at {{.support_email}}.</p>
	<p>&copy; {{.year}} {{.app_name}}</p>
</body>
</html>`

type ConsumeUserRegisteredInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

// ConsumeUserRegistered sends the welcome email. Redelivered events are
// deduplicated on the user id, so at-least-once transports send one email.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid user registered event", "error", err)
		return nil
	}

	key := "notification:user_registered:" + strconv.FormatInt(in.UserID, 10)
	err := s.idem.Exec(ctx, key, func(ctx context.Context) error {
		data := s.baseEmailTemplateData()
		data["username"] = in.Username

		subject, err := s.renderTemplate("subject", welcomeSubject, data)
		if err != nil {
			return err
		}
		body, err := s.renderTemplate("body", welcomeBodyHTML, data)
		if err != nil {
			return err
		}

		return s.repoMail.Send(ctx, mail.Message{
			To:       []string{in.Email},
			Subject:  subject,
			HTMLBody: body,
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "skip duplicate user registered event", "user_id", in.UserID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
