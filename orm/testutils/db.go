package testutils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/orm"
	"gorm.io/gorm"
)

// SetupTestDB creates an isolated in-memory SQLite database with the named
// workshop schema ("store" or "insurance")
func SetupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := orm.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, orm.Migrate(db, name))
	return db
}

// SeededDB returns a test database filled with the workshop sample data.
// Policy dates are computed from now.
func SeededDB(t *testing.T, name string, now time.Time) *gorm.DB {
	t.Helper()
	db := SetupTestDB(t, name)
	require.NoError(t, orm.Seed(db, name, now))
	return db
}
