package repositories

import (
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MigratePostgres creates or updates the user and edge tables together with their unique indexes
func MigratePostgres(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Like{}, &models.Subscription{}); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
