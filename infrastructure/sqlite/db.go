// Package sqlite owns the dashboard's local store: users, sessions, RBAC
// resources, export runs and audit logs. Warehouse records never land here.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// DB holds separate writer and reader handles. The writer is a single
// connection taking immediate transactions; readers pool freely.
type DB struct {
	WriteSQL *sql.DB
	ReadSQL  *sql.DB
	W        *bun.DB
	R        *bun.DB
}

const (
	readPoolSize = 4
	connLifetime = 15 * time.Minute
)

func writerDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
}

func readerDSN(path string, readOnlyMode bool) string {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_query_only=1", path)
	if readOnlyMode {
		dsn += "&mode=ro"
	}
	return dsn
}

// OpenDB opens the writer and reader handles for path.
func OpenDB(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	writer, err := sql.Open("sqlite3", writerDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)
	writer.SetConnMaxLifetime(connLifetime)

	reader, err := sql.Open("sqlite3", readerDSN(path, true))
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}

	// mode=ro cannot open a file that does not exist yet; before first
	// migration the reader falls back to query_only on a normal handle.
	if err := reader.Ping(); err != nil && strings.Contains(err.Error(), "unable to open database file") {
		reader.Close()
		if reader, err = sql.Open("sqlite3", readerDSN(path, false)); err != nil {
			writer.Close()
			return nil, fmt.Errorf("open bootstrap reader: %w", err)
		}
	}
	reader.SetMaxOpenConns(readPoolSize)
	reader.SetConnMaxIdleTime(5 * time.Minute)
	reader.SetConnMaxLifetime(connLifetime)

	if _, err := reader.Exec("PRAGMA query_only = ON"); err != nil {
		writer.Close()
		reader.Close()
		return nil, fmt.Errorf("set reader query_only: %w", err)
	}

	return &DB{
		WriteSQL: writer,
		ReadSQL:  reader,
		W:        bun.NewDB(writer, sqlitedialect.New()),
		R:        bun.NewDB(reader, sqlitedialect.New()),
	}, nil
}

// Close closes both handles, reporting the first failure.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	var werr, rerr error
	if db.W != nil {
		werr = db.W.Close()
	}
	if db.R != nil {
		rerr = db.R.Close()
	}
	return errors.Join(werr, rerr)
}
