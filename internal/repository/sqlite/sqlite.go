package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/cyber-thread/internal/repository/sqlite/migrations"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect describes SQLite to the shared repositories.
var Dialect = sqlstore.Dialect{
	Name:                  "sqlite",
	Returning:             true,
	IsUniqueViolation:     constraintError(sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE"),
	IsForeignKeyViolation: constraintError(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY"),
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*sqlstore.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers; one connection also keeps the pragmas
	// below in effect for every query.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return sqlstore.New(db, Dialect, migrations.FS), nil
}

// constraintError matches the extended result code, falling back to the
// primary SQLITE_CONSTRAINT code plus message when extended codes are off.
func constraintError(extended int, marker string) func(error) bool {
	return func(err error) bool {
		var se *msqlite.Error
		if !errors.As(err, &se) {
			return false
		}
		if se.Code() == extended {
			return true
		}
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), marker)
	}
}
