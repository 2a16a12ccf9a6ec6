// Package migration wires the schema the core owns. The dashboard shares
// these tables and migrates nothing itself.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/leaders-st/helpdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketNoteModel{},
		&models.NotificationModel{},
	}
}

// Run applies the schema with gorm AutoMigrate.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
