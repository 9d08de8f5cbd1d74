// Package postgres opens the store on PostgreSQL through pgx's
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/msomdec/cyber-thread/internal/repository/postgres/migrations"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Dialect describes PostgreSQL to the shared repositories.
var Dialect = sqlstore.Dialect{
	Name:                  "postgres",
	Rebind:                sqlstore.DollarRebind,
	Returning:             true,
	IsUniqueViolation:     hasCode(uniqueViolation),
	IsForeignKeyViolation: hasCode(foreignKeyViolation),
}

// New opens a pooled connection to the database at dsn and verifies it is
// reachable.
func New(ctx context.Context, dsn string, maxConns int) (*sqlstore.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlstore.PoolConfig{
		MaxOpenConns:    maxConns,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}.Apply(db)

	if err := sqlstore.PingWithRetry(ctx, db, 5); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return sqlstore.New(db, Dialect, migrations.FS), nil
}

func hasCode(code string) func(error) bool {
	return func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == code
	}
}
