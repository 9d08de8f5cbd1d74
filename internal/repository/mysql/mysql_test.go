package mysql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/msomdec/cyber-thread/internal/repository/mysql"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore/storetest"
)

func TestRepositories(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping MySQL repository test: MYSQL_TEST_DSN not set")
	}

	ctx := context.Background()
	db, err := mysql.New(ctx, dsn, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	storetest.Run(t, db)
}

func TestConfigForcesOptions(t *testing.T) {
	cfg, err := mysql.Config("root:secret@tcp(localhost:3306)/cyber_thread")
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if !cfg.ParseTime || !cfg.MultiStatements || !cfg.ClientFoundRows {
		t.Fatalf("expected parseTime, multiStatements and clientFoundRows, got %+v", cfg)
	}
	if cfg.Loc != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Loc)
	}
	if cfg.DBName != "cyber_thread" || cfg.Addr != "localhost:3306" {
		t.Fatalf("unexpected parsed dsn: %+v", cfg)
	}
}

func TestConfigInvalidDSN(t *testing.T) {
	if _, err := mysql.Config("not a dsn"); err == nil {
		t.Fatal("expected error for invalid dsn")
	}
}

func TestDialectErrors(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !mysql.Dialect.IsUniqueViolation(dup) {
		t.Fatal("expected 1062 to be a unique violation")
	}
	fk := &gomysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	if !mysql.Dialect.IsForeignKeyViolation(fk) {
		t.Fatal("expected 1452 to be a foreign key violation")
	}
	if mysql.Dialect.IsUniqueViolation(errors.New("boom")) {
		t.Fatal("plain error must not match")
	}
}
