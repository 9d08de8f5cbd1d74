// Package mysql opens the store on MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/msomdec/cyber-thread/internal/repository/mysql/migrations"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore"
)

const (
	errDupEntry        = 1062
	errNoReferencedRow = 1452
)

// Dialect describes MySQL to the shared repositories.
var Dialect = sqlstore.Dialect{
	Name:                  "mysql",
	IsUniqueViolation:     hasNumber(errDupEntry),
	IsForeignKeyViolation: hasNumber(errNoReferencedRow),
}

// New opens a pooled connection to the database at dsn
// (user:pass@tcp(host:3306)/dbname) and verifies it is reachable.
func New(ctx context.Context, dsn string, maxConns int) (*sqlstore.DB, error) {
	cfg, err := Config(dsn)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	db := sql.OpenDB(connector)

	sqlstore.PoolConfig{
		MaxOpenConns:    maxConns,
		ConnMaxLifetime: 3 * time.Minute,
		ConnMaxIdleTime: time.Minute,
	}.Apply(db)

	if err := sqlstore.PingWithRetry(ctx, db, 5); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return sqlstore.New(db, Dialect, migrations.FS), nil
}

// Config parses dsn and forces the options the repositories rely on:
// DATETIME scanned into time.Time in UTC, multi-statement migration files,
// and RowsAffected counting matched rather than changed rows.
func Config(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.MultiStatements = true
	cfg.ClientFoundRows = true
	return cfg, nil
}

func hasNumber(number uint16) func(error) bool {
	return func(err error) bool {
		var myErr *mysql.MySQLError
		return errors.As(err, &myErr) && myErr.Number == number
	}
}
