// Package server wires configuration, storage, services and transports
// into a runnable TaskJournal server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskjournal/internal/logging"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/config"
	"github.com/dmitrijs2005/taskjournal/internal/server/httpapi"
	"github.com/dmitrijs2005/taskjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/taskjournal/internal/server/grpc"
)

// Runner is a transport that serves until its context is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	runners []Runner
}

// NewApp opens the database, applies migrations and builds the transports.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	secret := []byte(c.SecretKey)
	issuer := auth.NewIssuer(secret, c.AccessTokenValidityDuration)
	resolver := auth.NewResolver(secret)

	as := services.NewAccountService(db, rm, auth.NewBcryptHasher(c.PasswordHashCost), issuer, c.RefreshTokenValidityDuration)
	ts := services.NewTaskService(db, rm)

	runners := []Runner{gs.NewGRPCServer(c.EndpointAddrGRPC, logger, as, ts, resolver)}
	if c.EndpointAddrHTTP != "" {
		runners = append(runners, httpapi.NewServer(c.EndpointAddrHTTP, logger, as, ts, resolver, c.AccessTokenValidityDuration))
	}

	return &App{config: c, logger: logger, db: db, runners: runners}
}

// Run serves every transport until SIGINT/SIGTERM/SIGQUIT or until one of
// them fails, then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return app.run(ctx)
}

func (app *App) run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "grpc", app.config.EndpointAddrGRPC, "http", app.config.EndpointAddrHTTP)

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range app.runners {
		g.Go(func() error {
			return r.Run(ctx)
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "server stopped with error", "error", err.Error())
	} else {
		err = nil
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
