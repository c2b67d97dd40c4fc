package models

import "github.com/shopspring/decimal"

// CategoryStat contains the summed expense amount for a single category.
// Rows are ordered descending by total amount.
type CategoryStat struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
