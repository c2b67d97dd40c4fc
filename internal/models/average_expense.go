package models

import "github.com/shopspring/decimal"

// AverageExpense contains the average expense amount per category across all users
type AverageExpense struct {
	Category      string          `json:"category"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}
