package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/servicehub-backend/internal/domain"
)

// AutoMigrateAll creates or widens the ledger tables. There is no versioned
// migration history; gorm only adds missing tables, columns and indexes.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}
