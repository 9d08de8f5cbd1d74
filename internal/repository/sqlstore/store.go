// Package sqlstore implements the domain repositories over database/sql.
// Backend packages (sqlite, postgres, mysql) open the connection, supply a
// Dialect and their own migrations, and hand back a *DB.
package sqlstore

import (
	"context"
	"database/sql"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/migrations"
)

// Dialect captures the few places where SQL backends differ.
type Dialect struct {
	Name string
	// Rebind converts "?" placeholders to the driver's syntax. Nil means
	// the driver accepts "?" as is.
	Rebind func(query string) string
	// Returning reports whether INSERT ... RETURNING id is supported.
	Returning             bool
	IsUniqueViolation     func(err error) bool
	IsForeignKeyViolation func(err error) bool
}

func (d Dialect) bind(query string) string {
	if d.Rebind == nil {
		return query
	}
	return d.Rebind(query)
}

// DollarRebind rewrites "?" placeholders as $1, $2, ... for Postgres.
func DollarRebind(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// DB wraps an open *sql.DB with its dialect and embedded migrations.
type DB struct {
	SqlDB      *sql.DB
	dialect    Dialect
	migrations fs.FS

	users *UserRepository
	posts *PostRepository
}

// New wraps an already-configured connection pool.
func New(db *sql.DB, dialect Dialect, migrationsFS fs.FS) *DB {
	d := &DB{SqlDB: db, dialect: dialect, migrations: migrationsFS}
	d.users = &UserRepository{db: db, dialect: dialect}
	d.posts = &PostRepository{db: db, dialect: dialect}
	return d
}

// Dialect returns the backend name, e.g. "sqlite".
func (d *DB) Dialect() string { return d.dialect.Name }

func (d *DB) Users() *UserRepository { return d.users }

func (d *DB) Posts() *PostRepository { return d.posts }

// Migrate applies the backend's pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB, d.migrations, d.dialect.Rebind)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUnique(d Dialect, err error) bool {
	return err != nil && d.IsUniqueViolation != nil && d.IsUniqueViolation(err)
}

func isForeignKey(d Dialect, err error) bool {
	return err != nil && d.IsForeignKeyViolation != nil && d.IsForeignKeyViolation(err)
}

// scanTime scans a created_at column. Driver times pass through, text is
// parsed with the known layouts, and anything else scans as the zero time.
type scanTime struct{ t *time.Time }

func (s scanTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.t = v
	case string:
		*s.t, _ = domain.ParseTimestamp(v)
	case []byte:
		*s.t, _ = domain.ParseTimestamp(string(v))
	default:
		*s.t = time.Time{}
	}
	return nil
}
