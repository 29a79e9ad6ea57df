package dto

// HistoryFilter narrows the ledger listing by action kind.
type HistoryFilter struct {
	ActionType string `form:"action_type" validate:"omitempty,oneof=discount donation"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// HistoryEntryResponse is one row of the decision trail, newest first.
// ProductName/ProductCategory fall back to a placeholder when the product
// was deleted after the decision.
type HistoryEntryResponse struct {
	ID                 string `json:"id"`
	ProductID          string `json:"product_id"`
	ProductName        string `json:"product_name"`
	ProductCategory    string `json:"product_category"`
	ActionType         string `json:"action_type"`
	DiscountPercentage *int   `json:"discount_percentage,omitempty"`
	Reason             string `json:"reason"`
	DecidedBy          string `json:"decided_by"`
	CreatedAt          string `json:"created_at"`
}

type HistoryListResponse struct {
	Data  []HistoryEntryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
