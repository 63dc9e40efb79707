package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// app is the wiring shared by every subcommand that touches the database.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// openApp loads config, connects the pool and builds the service container.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("initializing database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	return &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		services: services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)),
	}, nil
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool)
}
