package models

// CategoryTotal contains transaction amounts aggregated by category.
// The aggregation spans all users in the store, not a single owner.
type CategoryTotal struct {
	Category         string  `json:"category"`
	TransactionCount int64   `json:"transaction_count"`
	TotalAmount      float64 `json:"total_amount"`
}
