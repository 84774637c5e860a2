package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
)

const importSummarySubject = "Your credential import has finished"

const importSummaryBodyHTML = `<html>
<body>
	<p>Hi,</p>
	<p>We finished processing <b>{{.file_name}}</b>.</p>
	<ul>
		<li>Imported: {{.imported}}</li>
		<li>Skipped: {{.skipped}}</li>
	</ul>
	<p>Skipped rows were missing a supplier name or password.</p>
	<p>&copy; {{.year}} {{.app_name}}</p>
</body>
</html>`

type ConsumeCredentialsImportedInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	Imported int    `validate:"gte=0"`
	Skipped  int    `validate:"gte=0"`
	FileName string
}

// ConsumeCredentialsImported emails the import summary. The correlation id
// identifies the originating upload, so redeliveries are deduplicated on it.
func (s *Usecase) ConsumeCredentialsImported(ctx context.Context, in ConsumeCredentialsImportedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCredentialsImported")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid credentials imported event", "error", err)
		return nil
	}

	key := "notification:credentials_imported:" + instrument.GetCorrelationID(ctx)
	err := s.idem.Exec(ctx, key, func(ctx context.Context) error {
		data := s.baseEmailTemplateData()
		data["file_name"] = in.FileName
		data["imported"] = in.Imported
		data["skipped"] = in.Skipped

		body, err := s.renderTemplate("body", importSummaryBodyHTML, data)
		if err != nil {
			return err
		}

		return s.repoMail.Send(ctx, mail.Message{
			To:       []string{in.Email},
			Subject:  importSummarySubject,
			HTMLBody: body,
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "skip duplicate credentials imported event", "user_id", in.UserID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send import summary email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
