package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Dates travel as ISO YYYY-MM-DD strings and are parsed in the service layer.
type CreateProductRequest struct {
	Name          string          `json:"name"            validate:"required,min=1,max=120"`
	Category      string          `json:"category"        validate:"omitempty,max=60"`
	Quantity      int             `json:"quantity"        validate:"min=0"`
	ExpiryDate    string          `json:"expiry_date"     validate:"required"`
	AvgDailySales float64         `json:"avg_daily_sales" validate:"min=0"`
	Price         decimal.Decimal `json:"price"           validate:"min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"            validate:"omitempty,min=1,max=120"`
	Category      *string          `json:"category"        validate:"omitempty,max=60"`
	Quantity      *int             `json:"quantity"        validate:"omitempty,min=0"`
	ExpiryDate    *string          `json:"expiry_date"`
	AvgDailySales *float64         `json:"avg_daily_sales" validate:"omitempty,min=0"`
	Price         *decimal.Decimal `json:"price"           validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	ExpiryDate    string          `json:"expiry_date"`
	AvgDailySales float64         `json:"avg_daily_sales"`
	Price         decimal.Decimal `json:"price"`
	// DaysLeft is derived at response time; negative means already expired.
	DaysLeft int `json:"days_left"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CSVImportResponse summarizes a bulk import: rows missing a name or expiry
// date are skipped, not errored.
type CSVImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
