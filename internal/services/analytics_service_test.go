package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/models"
	"fintrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	transactionRepo  *repository_mocks.MockTransactionRepositoryInterface
	statsCache       *cache.MemoryCache
	analyticsService AnalyticsServiceInterface
	userID           uuid.UUID
}

func (s *AnalyticsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.statsCache = cache.NewMemoryCache(100)
	s.analyticsService = NewAnalyticsService(s.transactionRepo, s.statsCache, time.Hour, NewNoopMetrics(), slog.Default())
	s.userID = uuid.New()
}

func (s *AnalyticsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (s *AnalyticsServiceTestSuite) TestGetBalance() {
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeIncome).
		Return(decimal.RequireFromString("500"), nil).Times(1)
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeExpense).
		Return(decimal.RequireFromString("100"), nil).Times(1)

	balance, err := s.analyticsService.GetBalance(s.userID, []string{
		models.TransactionTypeIncome,
		models.TransactionTypeExpense,
	})

	s.NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("400")))
}

func (s *AnalyticsServiceTestSuite) TestGetBalance_NoTransactions() {
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeIncome).
		Return(decimal.Zero, nil).Times(1)
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeExpense).
		Return(decimal.Zero, nil).Times(1)

	balance, err := s.analyticsService.GetBalance(s.userID, []string{
		models.TransactionTypeIncome,
		models.TransactionTypeExpense,
	})

	s.NoError(err)
	s.True(balance.IsZero())
}

func (s *AnalyticsServiceTestSuite) TestGetBalance_NegativeWhenExpensesExceedIncome() {
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeIncome).
		Return(decimal.RequireFromString("100"), nil).Times(1)
	s.transactionRepo.EXPECT().SumAmountByType(s.userID, models.TransactionTypeExpense).
		Return(decimal.RequireFromString("250"), nil).Times(1)

	balance, err := s.analyticsService.GetBalance(s.userID, []string{
		models.TransactionTypeIncome,
		models.TransactionTypeExpense,
	})

	s.NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("-150")))
}

func (s *AnalyticsServiceTestSuite) TestGetBalance_RequiresTwoTypes() {
	_, err := s.analyticsService.GetBalance(s.userID, []string{models.TransactionTypeIncome})
	s.Error(err)
}

func (s *AnalyticsServiceTestSuite) TestGetCategoryStats_MissComputesAndCaches() {
	stats := []models.CategoryStat{
		{Category: "Rent", TotalAmount: decimal.RequireFromString("200")},
		{Category: "Food", TotalAmount: decimal.RequireFromString("150")},
	}

	// Repository consulted exactly once; the second call is served from cache
	s.transactionRepo.EXPECT().GetCategoryStats(s.userID).Return(stats, nil).Times(1)

	first, err := s.analyticsService.GetCategoryStats(s.userID)
	s.NoError(err)
	s.Require().Len(first, 2)
	s.Equal("Rent", first[0].Category)

	second, err := s.analyticsService.GetCategoryStats(s.userID)
	s.NoError(err)
	s.Require().Len(second, 2)
	s.True(second[0].TotalAmount.Equal(decimal.RequireFromString("200")))
}

func (s *AnalyticsServiceTestSuite) TestGetCategoryStats_PerUserCacheKeys() {
	otherID := uuid.New()

	s.transactionRepo.EXPECT().GetCategoryStats(s.userID).
		Return([]models.CategoryStat{{Category: "Food", TotalAmount: decimal.RequireFromString("10")}}, nil).Times(1)
	s.transactionRepo.EXPECT().GetCategoryStats(otherID).
		Return([]models.CategoryStat{{Category: "Rent", TotalAmount: decimal.RequireFromString("20")}}, nil).Times(1)

	mine, err := s.analyticsService.GetCategoryStats(s.userID)
	s.NoError(err)
	theirs, err := s.analyticsService.GetCategoryStats(otherID)
	s.NoError(err)

	s.Equal("Food", mine[0].Category)
	s.Equal("Rent", theirs[0].Category)
}

func (s *AnalyticsServiceTestSuite) TestGetCategoryStats_EmptyResultIsNotNil() {
	s.transactionRepo.EXPECT().GetCategoryStats(s.userID).Return(nil, nil).Times(1)

	stats, err := s.analyticsService.GetCategoryStats(s.userID)
	s.NoError(err)
	s.NotNil(stats)
	s.Empty(stats)
}

func (s *AnalyticsServiceTestSuite) TestGetCategoryStats_CorruptCacheEntryRecomputes() {
	s.statsCache.Set("categoryStats:"+s.userID.String(), "{not json", time.Hour)

	stats := []models.CategoryStat{{Category: "Food", TotalAmount: decimal.RequireFromString("10")}}
	s.transactionRepo.EXPECT().GetCategoryStats(s.userID).Return(stats, nil).Times(1)

	result, err := s.analyticsService.GetCategoryStats(s.userID)
	s.NoError(err)
	s.Len(result, 1)
}

func (s *AnalyticsServiceTestSuite) TestGetCategoryStats_RepositoryError() {
	s.transactionRepo.EXPECT().GetCategoryStats(s.userID).Return(nil, errors.New("db down")).Times(1)

	_, err := s.analyticsService.GetCategoryStats(s.userID)
	s.Error(err)

	// Errors are never cached
	_, ok := s.statsCache.Get("categoryStats:" + s.userID.String())
	s.False(ok)
}

func (s *AnalyticsServiceTestSuite) transaction(txType, amount, date string) models.Transaction {
	parsed, err := time.Parse("2006-01-02", date)
	s.Require().NoError(err)
	return models.Transaction{
		ID:     uuid.New(),
		UserID: s.userID,
		Type:   txType,
		Amount: decimal.RequireFromString(amount),
		Date:   parsed,
	}
}

func (s *AnalyticsServiceTestSuite) TestGetMonthlySummary() {
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeIncome, "500", "2024-12-01"),
		s.transaction(models.TransactionTypeExpense, "100", "2024-12-02"),
	}
	s.transactionRepo.EXPECT().GetAllByUser(s.userID).Return(transactions, nil).Times(1)

	summary, err := s.analyticsService.GetMonthlySummary(s.userID)

	s.NoError(err)
	s.Require().Contains(summary, "2024-12")
	s.True(summary["2024-12"].Income.Equal(decimal.RequireFromString("500")))
	s.True(summary["2024-12"].Expense.Equal(decimal.RequireFromString("100")))
}

func (s *AnalyticsServiceTestSuite) TestGetMonthlySummary_MultipleMonths() {
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeIncome, "500", "2024-11-28"),
		s.transaction(models.TransactionTypeIncome, "500", "2024-12-01"),
		s.transaction(models.TransactionTypeExpense, "75", "2024-12-15"),
		s.transaction(models.TransactionTypeExpense, "25", "2024-12-20"),
	}
	s.transactionRepo.EXPECT().GetAllByUser(s.userID).Return(transactions, nil).Times(1)

	summary, err := s.analyticsService.GetMonthlySummary(s.userID)

	s.NoError(err)
	s.Len(summary, 2)
	s.True(summary["2024-11"].Income.Equal(decimal.RequireFromString("500")))
	s.True(summary["2024-11"].Expense.IsZero())
	s.True(summary["2024-12"].Income.Equal(decimal.RequireFromString("500")))
	s.True(summary["2024-12"].Expense.Equal(decimal.RequireFromString("100")))
}

func (s *AnalyticsServiceTestSuite) TestGetMonthlySummary_UnknownTypeCreatesEmptyBucket() {
	transactions := []models.Transaction{
		s.transaction("TRANSFER", "300", "2024-10-05"),
	}
	s.transactionRepo.EXPECT().GetAllByUser(s.userID).Return(transactions, nil).Times(1)

	summary, err := s.analyticsService.GetMonthlySummary(s.userID)

	s.NoError(err)
	s.Require().Contains(summary, "2024-10")
	s.True(summary["2024-10"].Income.IsZero())
	s.True(summary["2024-10"].Expense.IsZero())
}

func (s *AnalyticsServiceTestSuite) TestGetMonthlySummary_NoTransactions() {
	s.transactionRepo.EXPECT().GetAllByUser(s.userID).Return(nil, nil).Times(1)

	summary, err := s.analyticsService.GetMonthlySummary(s.userID)

	s.NoError(err)
	s.NotNil(summary)
	s.Empty(summary)
}
