package models

import "time"

// Client is a customer whose payments are recorded as incomes.
type Client struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:36;not null"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"size:128"`
	Phone     string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
