package database

import (
	"fmt"

	"bizledger/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Client{},
		&models.Income{},
		&models.Expense{},
		&models.Transaction{},
		&models.Employee{},
		&models.PayrollPayment{},
		&models.AdminPayment{},
		&models.Reminder{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
