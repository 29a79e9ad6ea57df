package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog row tracked for expiry risk.
// Quantity is units on hand and never goes below zero; a confirmed donation
// sets it to 0 through the risk confirmation flow.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Category string    `gorm:"not null;default:'Other'"`
	Quantity int       `gorm:"not null;default:0"`
	// ExpiryDate carries no time-of-day component; it is exchanged as YYYY-MM-DD.
	ExpiryDate    time.Time       `gorm:"type:date;index;not null"`
	AvgDailySales float64         `gorm:"type:decimal(8,2);not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
