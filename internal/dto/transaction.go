package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction Request DTOs

// CreateTransactionRequest contains the fields for creating a transaction.
// Pointer fields distinguish absent from zero values so the service can
// report which required field is missing.
type CreateTransactionRequest struct {
	Type        string           `json:"type" validate:"omitempty,transaction_type"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Date        string           `json:"date" validate:"omitempty,iso_date"`
	Description string           `json:"description"`
}

// UpdateTransactionRequest contains the fields for a partial transaction update.
// Only non-nil fields are applied.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type" validate:"omitempty,transaction_type"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date" validate:"omitempty,iso_date"`
	Description *string          `json:"description"`
}

// ListTransactionsQuery contains the query parameters for listing transactions
type ListTransactionsQuery struct {
	Type      string `query:"type"`
	Category  string `query:"category"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// Transaction Response DTOs

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
