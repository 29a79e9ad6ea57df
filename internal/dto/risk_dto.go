package dto

import "github.com/shopspring/decimal"

// SuggestionResponse is one risk-zone recommendation. It is recomputed on
// every listing and never persisted as-is; confirming one creates the
// immutable ledger entry instead.
type SuggestionResponse struct {
	Product           SuggestionProduct `json:"product"`
	Action            string            `json:"action"` // "discount" | "donation"
	Reason            string            `json:"reason"`
	DaysLeft          int               `json:"days_left"`
	AlreadyDonated    bool              `json:"already_donated"`
	AlreadyDiscounted bool              `json:"already_discounted"`
}

// SuggestionProduct embeds the product fields the dashboard cards render.
type SuggestionProduct struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	ExpiryDate    string          `json:"expiry_date"`
	AvgDailySales float64         `json:"avg_daily_sales"`
	Price         decimal.Decimal `json:"price"`
}

// ConfirmRequest records a user decision for a suggested product.
// DiscountPercentage applies to discounts only; nil defaults to 30.
// Reason should echo the suggestion's reason text so the ledger snapshots
// exactly what the user saw; when omitted it is recomputed server-side.
type ConfirmRequest struct {
	ProductID          string `json:"product_id" validate:"required,uuid"`
	Action             string `json:"action"     validate:"required,oneof=discount donation"`
	DiscountPercentage *int   `json:"discount_percentage" validate:"omitempty,min=1,max=100"`
	Reason             string `json:"reason"     validate:"max=500"`
}

type ConfirmResponse struct {
	EntryID string `json:"entry_id"`
	// QuantityZeroed reports whether the donation stock write succeeded.
	// False with Warning set means the ledger entry exists but stock still
	// shows the old quantity (accepted inconsistency window, see history).
	QuantityZeroed bool   `json:"quantity_zeroed"`
	Warning        string `json:"warning,omitempty"`
}
