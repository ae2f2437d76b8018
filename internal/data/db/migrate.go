package db

import (
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Catalog
		&types.Course{},
		&types.Resource{},

		// Learning state
		&types.Enrollment{},
		&types.CompletedResource{},

		// Feedback
		&types.Rating{},
	)
}
