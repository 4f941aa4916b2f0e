// Package duckdbtesting opens throwaway DuckDB databases for tests.
package duckdbtesting

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"serpbench/internal/duckdb"
	"serpbench/internal/testutil"
)

const pingTimeout = 2 * time.Second

// Open returns an in-memory database with the schema applied, closed
// when the test finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	return open(t, "")
}

// OpenFile returns a database backed by a file under the test's temp
// directory, for code paths that reopen the same path.
func OpenFile(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "serpbench.duckdb")
	return open(t, path), path
}

func open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.PingContext(testutil.Context(t, pingTimeout)); err != nil {
		t.Fatalf("ping duckdb: %v", err)
	}
	return db
}
