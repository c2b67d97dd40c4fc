package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// Update applies a partial update to a transaction and returns the updated record.
// Only the supplied fields change.
func (r *transactionRepository) Update(id uuid.UUID, fields map[string]interface{}) (*models.Transaction, error) {
	result := r.db.Model(&models.Transaction{ID: id}).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}

	return r.GetByID(id)
}

// Delete removes a transaction by ID
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetWithFilters retrieves transactions matching the filter criteria,
// ordered by the requested column (date ascending when unset)
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, error) {
	var transactions []models.Transaction

	query := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", filters.UserID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	sortOrder := filters.SortOrder
	if sortOrder != models.SortOrderDesc {
		sortOrder = models.SortOrderAsc
	}

	if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, nil
}

// SumAmountByType returns the summed amount of all transactions of the given
// type for a user. A missing sum is treated as zero.
func (r *transactionRepository) SumAmountByType(userID uuid.UUID, transactionType string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND type = ?", userID, transactionType).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}

	return result.Total, nil
}

// GetCategoryStats returns per-category expense totals for a user,
// ordered descending by total amount
func (r *transactionRepository) GetCategoryStats(userID uuid.UUID) ([]models.CategoryStat, error) {
	var stats []models.CategoryStat

	if err := r.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) as total_amount").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("category").
		Order("total_amount DESC").
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}

	return stats, nil
}

// GetAllByUser returns every transaction belonging to a user, ordered by date ascending
func (r *transactionRepository) GetAllByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction

	if err := r.db.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for user: %w", err)
	}

	return transactions, nil
}

// GetAverageExpensesByCategory returns average expense amounts per category
// across all users, ordered descending by average
func (r *transactionRepository) GetAverageExpensesByCategory() ([]models.AverageExpense, error) {
	var averages []models.AverageExpense

	if err := r.db.Model(&models.Transaction{}).
		Select("category, COALESCE(AVG(amount), 0) as average_amount").
		Where("type = ?", models.TransactionTypeExpense).
		Group("category").
		Order("average_amount DESC").
		Scan(&averages).Error; err != nil {
		return nil, fmt.Errorf("failed to get average expenses: %w", err)
	}

	return averages, nil
}
