package app

import (
	"context"
	"net/http"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/pkg/clock"
	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/goroutine"
	"github.com/danudoro/supplyvault/internal/pkg/hash"
	"github.com/danudoro/supplyvault/internal/pkg/idempotency"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/danudoro/supplyvault/internal/pkg/jwt"
	"github.com/danudoro/supplyvault/internal/pkg/mail"
	"github.com/danudoro/supplyvault/internal/pkg/messaging"
	"github.com/danudoro/supplyvault/internal/pkg/router"
	"github.com/danudoro/supplyvault/internal/pkg/secret"
	"github.com/danudoro/supplyvault/internal/pkg/storage"
	"github.com/danudoro/supplyvault/internal/pkg/uid"
	"github.com/danudoro/supplyvault/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	jwt       jwt.JWT
	secret    secret.Codec

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage
	challenge *challenge.Engine

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initChallenge()
	app.initSecret()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
