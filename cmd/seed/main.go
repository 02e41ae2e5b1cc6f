package main

import (
	"context"
	"fmt"
	"os"

	"fashion-storefront/internal/config"
	"fashion-storefront/internal/db"
	"fashion-storefront/internal/logging"
	couponrepo "fashion-storefront/internal/repository/coupon"
	productrepo "fashion-storefront/internal/repository/product"
	"fashion-storefront/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger), couponrepo.NewPostgres(pool), logger); err != nil {
		return fmt.Errorf("seed apply: %w", err)
	}
	logger.Info("seed applied")
	return nil
}
