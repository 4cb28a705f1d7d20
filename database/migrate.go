package database

import (
	"fmt"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the app needs. Order matters:
// order_items references both orders and menu_items.
func AutoMigrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.MenuItem{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	}
	for _, t := range tables {
		if err := db.AutoMigrate(t); err != nil {
			return fmt.Errorf("migrate %T: %w", t, err)
		}
	}
	utils.InfoLogger.Info("database migration completed")
	return nil
}
