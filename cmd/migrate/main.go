package main

import (
	"context"
	"fmt"
	"os"

	"fashion-storefront/internal/config"
	"fashion-storefront/internal/db"
	"fashion-storefront/internal/logging"
	"fashion-storefront/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the storefront database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withPool(c.Context, func(pool *pgxpool.Pool, logger *zap.Logger) error {
						if err := migrate.Apply(c.Context, pool); err != nil {
							return fmt.Errorf("apply migrations: %w", err)
						}
						logger.Info("migrations applied")
						return nil
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					return withPool(c.Context, func(pool *pgxpool.Pool, logger *zap.Logger) error {
						version, dirty, err := migrate.Version(c.Context, pool)
						if err != nil {
							return fmt.Errorf("read version: %w", err)
						}
						logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
						return nil
					})
				},
			},
		},
		DefaultCommand: "up",
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func withPool(ctx context.Context, fn func(*pgxpool.Pool, *zap.Logger) error) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.Named("migrate")
	defer func() { _ = logger.Sync() }()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()
	return fn(pool, logger)
}
