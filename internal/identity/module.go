package identity

import (
	"github.com/danudoro/supplyvault/internal/identity/inbound"
	"github.com/danudoro/supplyvault/internal/identity/outbound/db"
	"github.com/danudoro/supplyvault/internal/identity/outbound/mq"
	"github.com/danudoro/supplyvault/internal/identity/usecase"
	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/messaging"
	"github.com/danudoro/supplyvault/internal/pkg/router"
	"github.com/danudoro/supplyvault/internal/pkg/secret"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Challenge  *challenge.Engine          `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Secret     secret.Codec               `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbUser := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbUser,
		RepoMessaging: repoMsg,
		Challenge:     dep.Challenge,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Secret:        dep.Secret,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
