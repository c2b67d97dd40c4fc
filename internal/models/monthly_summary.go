package models

import "github.com/shopspring/decimal"

// MonthlyTotals holds the income and expense sums for one calendar month
type MonthlyTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlySummary maps "YYYY-MM" keys to the month's income/expense totals
type MonthlySummary map[string]MonthlyTotals
