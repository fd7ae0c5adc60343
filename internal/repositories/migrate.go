package repositories

import (
	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every relational table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
		&models.Reaction{},
		&models.Report{},
	)
}
