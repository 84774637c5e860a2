package mq

import (
	"context"
	"encoding/json"

	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/messaging"
	"github.com/danudoro/supplyvault/internal/shared/event"
	"github.com/danudoro/supplyvault/internal/vault/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishCredentialsImported(ctx context.Context, msg usecase.CredentialsImportedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishCredentialsImported")
	defer span.End()

	body, err := json.Marshal(event.CredentialsImportedMessage{
		UserID:   msg.UserID,
		Email:    msg.Email,
		Imported: msg.Imported,
		Skipped:  msg.Skipped,
		FileName: msg.FileName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.CredentialsImportedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
