package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coolcare/database"
)

// openTestDB returns an isolated in-memory SQLite database with the
// complaint schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "opening sqlite test database")

	err = db.AutoMigrate(
		&database.User{},
		&database.Building{},
		&database.Complaint{},
		&database.ComplaintImage{},
		&database.Response{},
		&database.ResponseImage{},
		&database.WorkTime{},
	)
	require.NoError(t, err, "migrating test schema")

	return db
}

// seedComplaint inserts a complaint with a fixed creation timestamp.
func seedComplaint(t *testing.T, db *gorm.DB, c database.Complaint, createdAt time.Time) database.Complaint {
	t.Helper()

	if !createdAt.IsZero() {
		c.CreatedAt = createdAt
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
