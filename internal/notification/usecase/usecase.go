package usecase

import (
	"bytes"
	"context"
	"html/template"

	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail  repoMail
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	idem      idempotency.Idempotency
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail    repoMail
	Config      config.Config
	Clock       clock.Clocker
	Validator   validator.Validator
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		idem:      dep.Idempotency,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"app_name":      s.cfg.GetString("app.name"),
		"support_email": s.cfg.GetString("mail.support_email"),
		"year":          s.clock.Now().Format("2006"),
	}
}
