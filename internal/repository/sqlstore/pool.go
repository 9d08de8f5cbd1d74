package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// PoolConfig bounds a networked backend's connection pool. Requests queue
// inside database/sql once MaxOpenConns are in use.
type PoolConfig struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Apply configures db with the pool limits.
func (c PoolConfig) Apply(db *sql.DB) {
	maxOpen := c.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
	if c.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(c.ConnMaxIdleTime)
	}
}

// PingWithRetry pings db up to attempts times with a linearly growing
// delay, returning the last error.
func PingWithRetry(ctx context.Context, db *sql.DB, attempts int) error {
	var err error
	for i := range attempts {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		slog.Warn("database ping failed", "attempt", i+1, "of", attempts, "error", err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}
	return err
}
