package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the document store and pings it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool and the Redis ping adapter.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ready pings every backend and returns the first failure, tagged with its name.
func Ready(ctx context.Context, backends map[string]Pinger) error {
	for name, p := range backends {
		if p == nil {
			return fmt.Errorf("%s not configured", name)
		}
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s not reachable", name)
		}
	}
	return nil
}
