package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/retrolex/internal/infrastructure/sqlite"
)

// NewTestStore opens a migrated in-memory mode store that is closed when the
// test ends.
func NewTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
