package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "retrolex.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist after NewDB")
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"file_modes", "settings", migrationsTable} {
		var name string
		err := db.conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var version int
	var dirty bool
	require.NoError(t, db.conn.QueryRow("SELECT version, dirty FROM "+migrationsTable).Scan(&version, &dirty))
	require.Equal(t, 2, version)
	require.False(t, dirty)
}

func TestNewDB_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retrolex.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.SettingsRepository().Set("platform", "coco"))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.SettingsRepository().Get("platform")
	require.NoError(t, err)
	require.Equal(t, "coco", got)

	_, err = os.Stat(dbPath + ".bak")
	require.ErrorIs(t, err, os.ErrNotExist, "no backup when the schema is current")
}

func TestNewDB_BacksUpBeforePendingMigration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retrolex.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.SettingsRepository().Set("platform", "coco"))
	// Leave the write in the WAL and pretend the last migration never ran.
	_, err = db1.conn.Exec("UPDATE " + migrationsTable + " SET version = 1")
	require.NoError(t, err)

	var backedUpFrom []uint
	require.NoError(t, migrateUp(db1.conn, func(from uint) error {
		backedUpFrom = append(backedUpFrom, from)
		return backup(db1.conn, dbPath+".bak")
	}))
	require.Equal(t, []uint{1}, backedUpFrom)
	require.NoError(t, db1.Close())

	bak, err := NewDB(dbPath + ".bak")
	require.NoError(t, err)
	defer bak.Close()
	got, err := bak.SettingsRepository().Get("platform")
	require.NoError(t, err)
	require.Equal(t, "coco", got, "backup includes pages written through the WAL")
}

func TestNewDB_BackupOnReopenAfterDowngrade(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retrolex.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db1.conn.Exec("UPDATE " + migrationsTable + " SET version = 1")
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err, "existing schema is backed up before migrating")
	require.Greater(t, info.Size(), int64(0))
}

func TestMigrateUp_SkipsHookWhenCurrent(t *testing.T) {
	db := newTestDB(t)
	called := false
	require.NoError(t, migrateUp(db.conn, func(uint) error {
		called = true
		return nil
	}))
	require.False(t, called)
}

func TestNewDB_Pragmas(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "retrolex.db"))
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, 5000, busyTimeout)
}

func TestDB_Close(t *testing.T) {
	db, err := NewDB(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Error(t, db.Connection().Ping(), "ping fails after Close")
}

func TestMigrationDriver_Lock(t *testing.T) {
	db := newTestDB(t)
	drv, err := newMigrationDriver(db.conn)
	require.NoError(t, err)

	require.NoError(t, drv.Lock())
	require.Error(t, drv.Lock())
	require.NoError(t, drv.Unlock())
	require.Error(t, drv.Unlock())
}

func TestMigrationDriver_DropAndReapply(t *testing.T) {
	db := newTestDB(t)
	drv, err := newMigrationDriver(db.conn)
	require.NoError(t, err)

	require.NoError(t, drv.Drop())
	var n int
	require.NoError(t, db.conn.QueryRow(
		"SELECT count(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'",
	).Scan(&n))
	require.Zero(t, n)

	require.NoError(t, migrateUp(db.conn, nil))
	require.NoError(t, db.FileModeRepository().Save(choice("/tmp/a.s", "asm6502")))
}
