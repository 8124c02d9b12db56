package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/maxviazov/wealth-balance-service/internal/config"
	"github.com/maxviazov/wealth-balance-service/internal/logger"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
	"github.com/maxviazov/wealth-balance-service/internal/repository/postgres"
	"github.com/maxviazov/wealth-balance-service/internal/service"
)

// verbosityFlag counts -v occurrences; -v=N sets the count directly.
type verbosityFlag int

func (v *verbosityFlag) String() string { return strconv.Itoa(int(*v)) }

func (v *verbosityFlag) IsBoolFlag() bool { return true }

func (v *verbosityFlag) Set(s string) error {
	switch s {
	case "true":
		*v++
		return nil
	case "false":
		*v = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("verbosity must be a non-negative integer, got %q", s)
	}
	*v = verbosityFlag(n)
	return nil
}

// app carries what every command needs: config, logger and, once connected, the pool.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *repository.Repository
}

// bootstrap loads config and builds the logger. -v overrides the configured level.
func bootstrap() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("config loading failed: %w", err)
	}
	if verbosity > 0 {
		cfg.Logger.Level = logger.LevelFromVerbosity(int(verbosity))
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger initialization failed: %w", err)
	}
	return &app{cfg: cfg, log: log}, nil
}

// connect checks the Postgres section only here, so commands that never touch
// the database run without its secrets.
func (a *app) connect(ctx context.Context) error {
	if err := a.cfg.Postgres.Validate(); err != nil {
		return err
	}
	db, err := repository.New(ctx, a.cfg, &a.log)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	a.db = db
	return nil
}

func (a *app) balanceRepository() repository.BalanceRepository {
	pool := a.db.Pool()
	return postgres.NewBalanceRepository(pool, postgres.NewTxManager(pool), a.cfg.Postgres.PoolTimeout)
}

func (a *app) balanceService(repo repository.BalanceRepository) service.BalanceService {
	resolver := pagination.NewResolver(a.cfg.Pagination.MaxPageSize, a.cfg.Pagination.IntersectBounds)
	return service.NewBalanceService(repo, a.log, pagination.WithResolver(resolver))
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}
