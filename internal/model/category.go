package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. A small fixed set is seeded at startup;
// managers can add their own.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SeedCategories are created on first boot when the table is empty.
var SeedCategories = []string{
	"Dairy", "Meat", "Fruit & Vegetables", "Bakery", "Canned", "Other",
}
