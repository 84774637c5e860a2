package notification

import (
	"context"

	"github.com/danudoro/supplyvault/internal/notification/inbound"
	"github.com/danudoro/supplyvault/internal/notification/outbound/email"
	"github.com/danudoro/supplyvault/internal/notification/usecase"
	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goroutine"
	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/danudoro/supplyvault/internal/pkg/messaging"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	Idempotency idempotency.Idempotency
	UUID        uid.StringID
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Mail        mail.Mail
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoMail:    repoMail,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
