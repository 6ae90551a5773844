package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpapi "github.com/aussiebroadwan/signup/internal/idp/http"
	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/internal/idp/store"
	"github.com/aussiebroadwan/signup/internal/idp/store/drivers/sqlite"
	"github.com/aussiebroadwan/signup/pkg/cryptox"
	"github.com/aussiebroadwan/signup/pkg/jwtx"
	"github.com/aussiebroadwan/signup/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application is the identity provider with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	keys *jwtx.HS256

	signUpService       *service.SignUpService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	server *http.Server
}

// New creates an Application with its database migrated and its services
// wired.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "signup-idp",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Run serves until ctx is cancelled or the server fails, then shuts down.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("identity provider starting", "port", app.cfg.Port, "version", BuildVersion)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.housekeepingService.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.logger.Info("shutting down identity provider...")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
		defer cancel()

		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("graceful server shutdown failed", "error", err)
			return app.server.Close()
		}
		return nil
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error("error closing database", "error", cerr)
		err = errors.Join(err, cerr)
	}

	app.logger.Info("identity provider stopped")
	return err
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initKeys sets up admin token verification. Without a configured secret a
// random one is used, so no admin token verifies.
func (app *Application) initKeys() error {
	secret := []byte(app.cfg.AdminSecret)
	if len(secret) == 0 {
		app.logger.Warn("IDP_ADMIN_SECRET not set, account administration is disabled")

		var err error
		secret, err = cryptox.GenerateSecret(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate admin secret: %w", err)
		}
	}

	keys, err := jwtx.NewHS256(secret, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("invalid IDP_ADMIN_SECRET: %w", err)
	}
	app.keys = keys
	return nil
}

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.signUpService = &service.SignUpService{
		Store:           app.db,
		Hasher:          cryptox.NewHasher(pepper),
		Sender:          service.LogCodeSender{},
		Policy:          service.PasswordPolicy{MinLength: app.cfg.PasswordMinLength},
		CodeTTL:         app.cfg.CodeTTL,
		MaxAttempts:     app.cfg.CodeMaxAttempts,
		ResendCooldown:  app.cfg.ResendCooldown,
		RequireApproval: app.cfg.RequireApproval,
	}

	app.accountService = &service.AccountService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.UnconfirmedTTL,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.logger)
	router.SignUpService = app.signUpService
	router.AccountService = app.accountService
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
