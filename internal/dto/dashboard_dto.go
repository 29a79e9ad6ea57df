package dto

// DashboardStats carries the four dashboard counters. RiskProducts counts
// products expiring within the 3-day dashboard horizon — a deliberately
// tighter window than the 5-day risk-zone listing.
type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	RiskProducts  int64 `json:"risk_products"`
	Discounted    int64 `json:"discounted"`
	Donated       int64 `json:"donated"`
}
