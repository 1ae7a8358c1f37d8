package testutils

import (
	"testing"

	"github.com/komunitech/komunitech/internal/config/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens a migrated in-memory database with foreign keys
// enforced. A single connection keeps the in-memory schema alive, so code
// under test must route every query inside a transaction through it.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        "file::memory:?_pragma=foreign_keys(1)",
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}
