package repositories

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

type TransactionRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo TransactionRepositoryInterface
	user *models.User
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) date(value string) time.Time {
	date, err := time.Parse("2006-01-02", value)
	s.Require().NoError(err)
	return date
}

func (s *TransactionRepositorySuite) TestTransactionRepository_CreateAndGetByID() {
	transaction := &models.Transaction{
		UserID:      s.user.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.RequireFromString("1250.50"),
		Category:    "Salary",
		Date:        s.date("2024-12-01"),
		Description: "December paycheck",
	}

	err := s.repo.Create(transaction)
	s.NoError(err)
	s.NotEqual(uuid.Nil, transaction.ID)

	found, err := s.repo.GetByID(transaction.ID)
	s.NoError(err)
	s.Equal(transaction.UserID, found.UserID)
	s.True(found.Amount.Equal(decimal.RequireFromString("1250.50")))

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrTransactionNotFound, err)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Update() {
	transaction := database.CreateTestTransaction(s.T(), s.db, s.user,
		models.TransactionTypeExpense, "42.00", "Food", s.date("2024-11-20"))

	updated, err := s.repo.Update(transaction.ID, map[string]interface{}{
		"amount":   decimal.RequireFromString("55.25"),
		"category": "Groceries",
	})
	s.NoError(err)
	s.True(updated.Amount.Equal(decimal.RequireFromString("55.25")))
	s.Equal("Groceries", updated.Category)
	// Untouched fields survive a partial update
	s.Equal(models.TransactionTypeExpense, updated.Type)

	_, err = s.repo.Update(uuid.New(), map[string]interface{}{"category": "X"})
	s.Equal(ErrTransactionNotFound, err)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Delete() {
	transaction := database.CreateTestTransaction(s.T(), s.db, s.user,
		models.TransactionTypeExpense, "10.00", "Food", s.date("2024-11-20"))

	s.NoError(s.repo.Delete(transaction.ID))

	_, err := s.repo.GetByID(transaction.ID)
	s.Equal(ErrTransactionNotFound, err)

	s.Equal(ErrTransactionNotFound, s.repo.Delete(transaction.ID))
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetWithFilters() {
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeIncome, "500.00", "Salary", s.date("2024-12-01"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "100.00", "Food", s.date("2024-12-02"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "30.00", "Transport", s.date("2024-11-15"))

	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	database.CreateTestTransaction(s.T(), s.db, other, models.TransactionTypeExpense, "999.00", "Food", s.date("2024-12-02"))

	// Owner scoping
	all, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID})
	s.NoError(err)
	s.Len(all, 3)
	// Default order is date ascending
	s.Equal("Transport", all[0].Category)
	s.Equal("Salary", all[1].Category)
	s.Equal("Food", all[2].Category)

	// Type filter
	expenses, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID: s.user.ID,
		Type:   models.TransactionTypeExpense,
	})
	s.NoError(err)
	s.Len(expenses, 2)

	// Category filter
	food, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:   s.user.ID,
		Category: "Food",
	})
	s.NoError(err)
	s.Len(food, 1)

	// Date range
	start := s.date("2024-12-01")
	december, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:    s.user.ID,
		StartDate: &start,
	})
	s.NoError(err)
	s.Len(december, 2)

	// Explicit sort
	byAmount, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:    s.user.ID,
		SortBy:    "amount",
		SortOrder: models.SortOrderDesc,
	})
	s.NoError(err)
	s.True(byAmount[0].Amount.GreaterThanOrEqual(byAmount[1].Amount))
}

func (s *TransactionRepositorySuite) TestTransactionRepository_SumAmountByType() {
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeIncome, "500.00", "Salary", s.date("2024-12-01"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "100.00", "Food", s.date("2024-12-02"))

	income, err := s.repo.SumAmountByType(s.user.ID, models.TransactionTypeIncome)
	s.NoError(err)
	s.True(income.Equal(decimal.RequireFromString("500")))

	expense, err := s.repo.SumAmountByType(s.user.ID, models.TransactionTypeExpense)
	s.NoError(err)
	s.True(expense.Equal(decimal.RequireFromString("100")))

	// No transactions sums to zero, not an error
	empty, err := s.repo.SumAmountByType(uuid.New(), models.TransactionTypeIncome)
	s.NoError(err)
	s.True(empty.IsZero())
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetCategoryStats() {
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "100.00", "Food", s.date("2024-12-01"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "50.00", "Food", s.date("2024-12-05"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "200.00", "Rent", s.date("2024-12-01"))
	// Income never contributes to category stats
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeIncome, "900.00", "Salary", s.date("2024-12-01"))

	stats, err := s.repo.GetCategoryStats(s.user.ID)
	s.NoError(err)
	s.Require().Len(stats, 2)

	// Descending by total amount
	s.Equal("Rent", stats[0].Category)
	s.True(stats[0].TotalAmount.Equal(decimal.RequireFromString("200")))
	s.Equal("Food", stats[1].Category)
	s.True(stats[1].TotalAmount.Equal(decimal.RequireFromString("150")))
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetAllByUser() {
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "100.00", "Food", s.date("2024-12-02"))
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeIncome, "500.00", "Salary", s.date("2024-12-01"))

	transactions, err := s.repo.GetAllByUser(s.user.ID)
	s.NoError(err)
	s.Require().Len(transactions, 2)
	s.Equal("Salary", transactions[0].Category)
	s.Equal("Food", transactions[1].Category)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetAverageExpensesByCategory() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")

	// Averages span all users
	database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "100.00", "Food", s.date("2024-12-01"))
	database.CreateTestTransaction(s.T(), s.db, other, models.TransactionTypeExpense, "200.00", "Food", s.date("2024-12-02"))
	database.CreateTestTransaction(s.T(), s.db, other, models.TransactionTypeExpense, "400.00", "Rent", s.date("2024-12-03"))

	averages, err := s.repo.GetAverageExpensesByCategory()
	s.NoError(err)
	s.Require().Len(averages, 2)

	s.Equal("Rent", averages[0].Category)
	s.True(averages[0].AverageAmount.Equal(decimal.RequireFromString("400")))
	s.Equal("Food", averages[1].Category)
	s.True(averages[1].AverageAmount.Equal(decimal.RequireFromString("150")))
}
