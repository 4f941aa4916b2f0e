package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	duckdbdriver "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

// resultsAppender binds a DuckDB bulk appender to a dedicated connection
// so Close releases both.
type resultsAppender struct {
	appender *duckdbdriver.Appender
	conn     *sql.Conn
}

// openResultsAppender acquires a connection and attaches an appender to
// the results table.
func openResultsAppender(ctx context.Context, db *sql.DB) (*resultsAppender, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	var appender *duckdbdriver.Appender
	if err := conn.Raw(func(driverConn any) error {
		rawConn, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb driver connection unavailable (got %T)", driverConn)
		}
		var aerr error
		appender, aerr = duckdbdriver.NewAppenderFromConn(rawConn, "", "results")
		return aerr
	}); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &resultsAppender{appender: appender, conn: conn}, nil
}

// AppendRow buffers one results row.
func (a *resultsAppender) AppendRow(values ...driver.Value) error {
	return a.appender.AppendRow(values...)
}

// Close flushes buffered rows and releases the connection.
func (a *resultsAppender) Close() error {
	err := a.appender.Close()
	if closeErr := a.conn.Close(); err == nil {
		err = closeErr
	}
	return err
}

// resetFixture clears any previous fixture at path and ensures its
// parent directory exists.
func resetFixture(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove existing fixture: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return nil
}

// fixtureNamespace keys the deterministic row ids.
var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("serpbench.fixture"))

// rowID derives a stable UUID for a fixture row.
func rowID(kind string, index int) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s/%d", kind, index))).String()
}
