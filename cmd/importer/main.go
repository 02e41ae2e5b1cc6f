package main

import (
	"fmt"
	"os"
	"time"

	"fashion-storefront/internal/config"
	"fashion-storefront/internal/db"
	"fashion-storefront/internal/importer"
	"fashion-storefront/internal/logging"
	productrepo "fashion-storefront/internal/repository/product"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "importer",
		Usage: "import a catalogue CSV into the product table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the catalogue CSV",
				Required: true,
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "importer: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.Named("importer")
	defer func() { _ = logger.Sync() }()

	pool, err := db.Connect(c.Context, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), logger)
	start := time.Now()
	count, err := imp.Run(c.Context)
	if err != nil {
		return fmt.Errorf("import failed after %d products: %w", count, err)
	}
	logger.Info("import finished", zap.Int("products", count),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return nil
}
