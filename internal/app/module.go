package app

import (
	"log/slog"
	"os"

	"github.com/danudoro/supplyvault/internal/identity"
	"github.com/danudoro/supplyvault/internal/notification"
	"github.com/danudoro/supplyvault/internal/vault"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Challenge:  a.challenge,
			Config:     a.config,
			Instrument: a.ins,
			Secret:     a.secret,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.vault.enabled") {
		if err := vault.New(vault.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Challenge:  a.challenge,
			Config:     a.config,
			Instrument: a.ins,
			Storage:    a.storage,
			Secret:     a.secret,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module vault", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			Idempotency: a.idemp,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Mail:        a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
