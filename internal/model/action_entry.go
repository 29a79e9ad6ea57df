package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionDiscount = "discount"
	ActionDonation = "donation"
)

// ActionEntry records one confirmed discount or donation decision.
// The table is append-only: entries are never updated or deleted, and they
// survive deletion of the product they reference (the product join is done
// manually so a dangling ProductID renders as a placeholder, not an error).
type ActionEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ActionType string    `gorm:"type:varchar(20);not null;index"` // "discount" | "donation"
	// DiscountPercentage is set iff ActionType is "discount", in [1,100].
	DiscountPercentage *int
	// Reason snapshots the justification shown at decision time; it is not
	// recomputed later.
	Reason    string    `gorm:"not null"`
	DecidedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

// TableName overrides GORM's pluralization (action_entries, not action_entrys).
func (ActionEntry) TableName() string { return "action_entries" }
