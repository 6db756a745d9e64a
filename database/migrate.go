package database

import (
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/utils"
)

// Migrate creates or updates the schema. The unique index on
// employees.employee_code is the only guard against the find-or-create
// race, so a failed migration here is fatal to the caller.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.Request{},
	); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
