package repositories

import (
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	Update(id uuid.UUID, fields map[string]interface{}) (*models.Transaction, error)
	Delete(id uuid.UUID) error
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, error)

	// Aggregation methods backing the analytics service
	SumAmountByType(userID uuid.UUID, transactionType string) (decimal.Decimal, error)
	GetCategoryStats(userID uuid.UUID) ([]models.CategoryStat, error)
	GetAllByUser(userID uuid.UUID) ([]models.Transaction, error)
	GetAverageExpensesByCategory() ([]models.AverageExpense, error)
}
