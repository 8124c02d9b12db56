package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"

	"github.com/maxviazov/wealth-balance-service/internal/handler"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
	"github.com/maxviazov/wealth-balance-service/internal/repository/memory"
	"github.com/maxviazov/wealth-balance-service/internal/repository/postgres"
)

type serveCmd struct {
	memory    bool
	noMigrate bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the balances HTTP API" }
func (*serveCmd) Usage() string {
	return `balances serve [-memory] [-no-migrate]

  Serves GET /api/v1/balances, POST /api/v1/import and the health probes.
  Migrations are applied on start unless -no-migrate is set.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.memory, "memory", false, "Use the in-memory store instead of postgres (data is lost on exit)")
	f.BoolVar(&c.noMigrate, "no-migrate", false, "Skip applying schema migrations on start")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, pinger, err := c.backend(ctx, a)
	if err != nil {
		a.log.Error().Err(err).Msg("startup failed")
		return subcommands.ExitFailure
	}
	engine := a.engine(repo, pinger)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error().Err(err).Msg("http server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		a.log.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("graceful shutdown failed")
		return subcommands.ExitFailure
	}
	a.log.Info().Msg("service stopped")
	return subcommands.ExitSuccess
}

// backend picks the store. Postgres settings are only checked when -memory is off.
func (c *serveCmd) backend(ctx context.Context, a *app) (repository.BalanceRepository, handler.Pinger, error) {
	if c.memory {
		a.log.Warn().Msg("using in-memory store")
		return memory.NewBalanceRepository(), alwaysReady{}, nil
	}
	if err := a.connect(ctx); err != nil {
		return nil, nil, err
	}
	if !c.noMigrate {
		if err := a.db.Migrate(ctx, a.log); err != nil {
			return nil, nil, err
		}
	}
	return a.balanceRepository(), postgres.NewPinger(a.db.Pool()), nil
}

func (a *app) engine(repo repository.BalanceRepository, pinger handler.Pinger) *gin.Engine {
	if a.cfg.App.Env == "prod" || a.cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	return handler.NewEngine(a.log, a.cfg.App.RequestTimeout, pinger, a.balanceService(repo))
}

type alwaysReady struct{}

func (alwaysReady) Ping(context.Context) error { return nil }
