package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/danudoro/supplyvault/internal/notification/usecase"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/messaging"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID:   payload.UserID,
		Username: payload.Username,
		Email:    payload.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) CredentialsImportedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "CredentialsImportedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: credentials imported notification", "msg_body", string(body))

	var payload event.CredentialsImportedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of credentials imported notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeCredentialsImported(ctx, usecase.ConsumeCredentialsImportedInput{
		UserID:   payload.UserID,
		Email:    payload.Email,
		Imported: payload.Imported,
		Skipped:  payload.Skipped,
		FileName: payload.FileName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume credentials imported", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
