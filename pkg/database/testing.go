package database

import (
	"testing"

	"github.com/jordanlanch/leadcrm/pkg/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestClient opens an isolated in-memory SQLite database with the full
// schema migrated. Intended for service tests only.
func NewTestClient(t *testing.T) *Client {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(domain.AllEntities()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &Client{DB: db}
}
