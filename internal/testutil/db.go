// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ananth-NQI/portfolio-backend/database"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// NewStore returns a DatabaseStore over a fresh in-memory database.
func NewStore(t *testing.T) *storage.DatabaseStore {
	t.Helper()
	return storage.NewDatabaseStore(NewDB(t))
}
