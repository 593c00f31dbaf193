// Package sqlite stores per-file mode choices and settings in SQLite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/retrolex/internal/filemode"
	"github.com/zjrosen/retrolex/internal/log"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB owns the connection and hands out repositories.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path and migrates it to
// the latest schema. When migrations are pending on an existing schema the
// database is first snapshotted to path+".bak".
func NewDB(path string) (*DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		// every new connection would see a fresh empty database
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var beforeUp func(uint) error
	if !memory {
		beforeUp = func(from uint) error {
			if err := backup(conn, path+".bak"); err != nil {
				return fmt.Errorf("backing up database: %w", err)
			}
			log.Info(log.CatStore, "Backed up database before migrating", "path", path, "version", from)
			return nil
		}
	}
	if err := migrateUp(conn, beforeUp); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatStore, "Migration failed", err, "path", path)
		return nil, err
	}

	log.Info(log.CatStore, "Opened mode store", "path", path)
	return &DB{conn: conn, path: path}, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	if path == MemoryPath {
		return "file::memory:?" + q.Encode()
	}
	q.Add("_pragma", "journal_mode(wal)")
	return "file:" + filepath.ToSlash(path) + "?" + q.Encode()
}

// backup writes a consistent snapshot of the open database to dst. VACUUM
// INTO reads through the connection, so pages still in the WAL are included.
func backup(conn *sql.DB, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	_, err := conn.Exec(`VACUUM INTO ?`, dst)
	return err
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the path the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// FileModeRepository returns the per-file mode repository.
func (db *DB) FileModeRepository() filemode.Repository {
	return newFileModeRepository(db.conn)
}

// SettingsRepository returns the settings repository.
func (db *DB) SettingsRepository() filemode.SettingsRepository {
	return newSettingsRepository(db.conn)
}
