package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// TransactionFilters contains filtering and sorting options for transaction queries
type TransactionFilters struct {
	UserID    uuid.UUID
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string
}

// sortableFields are the columns a caller may order transaction listings by
var sortableFields = map[string]bool{
	"date":       true,
	"amount":     true,
	"category":   true,
	"created_at": true,
}

// IsSortableField reports whether the given column may be used for ordering
func IsSortableField(field string) bool {
	return sortableFields[field]
}
