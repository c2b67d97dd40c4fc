package dto

import (
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Analytics Response DTOs

// BalanceResponse contains the user's current balance (income minus expenses)
type BalanceResponse struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// CategoryStatsResponse contains per-category expense totals, descending by total
type CategoryStatsResponse struct {
	Stats []models.CategoryStat `json:"stats"`
}

// MonthlySummaryResponse contains income/expense totals per calendar month
type MonthlySummaryResponse struct {
	MonthlySummary models.MonthlySummary `json:"monthlySummary"`
}

// AverageExpensesResponse contains global average expense amounts per category
type AverageExpensesResponse struct {
	AverageExpenses []models.AverageExpense `json:"averageExpenses"`
}

// FinanceTipResponse contains a single financial tip
type FinanceTipResponse struct {
	Tip string `json:"tip"`
}
