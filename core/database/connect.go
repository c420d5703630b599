package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m3rciful/paperbot/core/logger"
)

// DefaultReadyTimeout bounds how long Connect and RunMigrations wait for
// Postgres to accept connections.
const DefaultReadyTimeout = 30 * time.Second

// readyPoll is the pause between connection attempts while Postgres starts.
var readyPoll = 2 * time.Second

// Connect opens the pool once Postgres answers a ping and sizes it to
// cfg.MaxConnections.
func Connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultReadyTimeout)
	defer cancel()

	where := []slog.Attr{slog.String("host", cfg.Host), slog.String("port", cfg.Port), slog.String("db", cfg.Name)}
	start := time.Now()
	db, err := dial(ctx, cfg.DSN())
	if err != nil {
		logger.Error(ctx, logger.DB, "db.connect",
			append(where, slog.String("status", "fail"), slog.String("err", err.Error()), slog.Duration("duration", time.Since(start)))...)
		return nil, fmt.Errorf("db connect: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)

	logger.Info(ctx, logger.DB, "db.connect",
		append(where, slog.String("status", "ok"), slog.Int("pool", cfg.MaxConnections), slog.Duration("duration", time.Since(start)))...)
	return db, nil
}

// WaitForPostgres returns once Postgres at dsn accepts a connection, or an
// error after timeout.
func WaitForPostgres(dsn string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	db, err := dial(ctx, dsn)
	if err != nil {
		return err
	}
	return db.Close()
}

// dial connects and pings, retrying every readyPoll until ctx is done.
func dial(ctx context.Context, dsn string) (*sqlx.DB, error) {
	ticker := time.NewTicker(readyPoll)
	defer ticker.Stop()
	for {
		db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
		if err == nil {
			return db, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timeout reached waiting for database: %w", err)
		case <-ticker.C:
		}
	}
}
