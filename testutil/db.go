// Package testutil provides a throwaway SQLite-backed store for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"versusfut/repositories"
)

// NewStore opens a fresh migrated SQLite database under t.TempDir()
func NewStore(t *testing.T) *repositories.Store {
	t.Helper()
	db := NewDB(t)
	store := repositories.NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "versusfut.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps SQLite from reporting "database is locked" inside transactions
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
