package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	categoryStatsKeyPrefix = "categoryStats:"
	categoryStatsCacheName = "category_stats"
)

// AnalyticsService computes derived analytics over a user's transactions:
// signed balance, per-category expense totals and monthly summaries.
type AnalyticsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	cache           cache.Cache
	statsTTL        time.Duration
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	transactionRepo repositories.TransactionRepositoryInterface,
	statsCache cache.Cache,
	statsTTL time.Duration,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		cache:           statsCache,
		statsTTL:        statsTTL,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetBalance sums the user's transaction amounts per requested type and
// returns sum(types[0]) - sum(types[1]). The caller controls the sign by
// ordering the type list; missing sums count as zero.
func (s *AnalyticsService) GetBalance(userID uuid.UUID, types []string) (decimal.Decimal, error) {
	if len(types) != 2 {
		return decimal.Zero, fmt.Errorf("expected exactly two transaction types, got %d", len(types))
	}

	sums := make([]decimal.Decimal, len(types))
	for i, transactionType := range types {
		sum, err := s.transactionRepo.SumAmountByType(userID, transactionType)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to sum %s amounts: %w", transactionType, err)
		}
		sums[i] = sum
	}

	return sums[0].Sub(sums[1]), nil
}

// GetCategoryStats returns the user's expense totals grouped by category,
// descending by total. Results are memoized per user for the configured TTL
// (cache-aside); a cache hit returns immediately without recomputing, and
// cache failures are treated as misses.
func (s *AnalyticsService) GetCategoryStats(userID uuid.UUID) ([]models.CategoryStat, error) {
	cacheKey := categoryStatsKeyPrefix + userID.String()

	if cached, ok := s.cache.Get(cacheKey); ok {
		var stats []models.CategoryStat
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			s.metrics.RecordCacheAccess(categoryStatsCacheName, "hit")
			return stats, nil
		}
		// Unparseable entries fall through to a recompute
		s.cache.Delete(cacheKey)
		s.logger.Warn("discarding corrupt category stats cache entry", "user_id", userID)
	}

	s.metrics.RecordCacheAccess(categoryStatsCacheName, "miss")

	stats, err := s.transactionRepo.GetCategoryStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category stats: %w", err)
	}

	if stats == nil {
		stats = []models.CategoryStat{}
	}

	if encoded, err := json.Marshal(stats); err == nil {
		s.cache.Set(cacheKey, string(encoded), s.statsTTL)
	}

	return stats, nil
}

// GetMonthlySummary folds all of the user's transactions, ordered by date
// ascending, into per-month income/expense buckets keyed by "YYYY-MM".
// Transactions whose type is neither INCOME nor EXPENSE update neither bucket.
func (s *AnalyticsService) GetMonthlySummary(userID uuid.UUID) (models.MonthlySummary, error) {
	transactions, err := s.transactionRepo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	summary := models.MonthlySummary{}

	for _, transaction := range transactions {
		month := transaction.Month()

		totals, ok := summary[month]
		if !ok {
			totals = models.MonthlyTotals{
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
		}

		switch transaction.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(transaction.Amount)
		case models.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(transaction.Amount)
		}

		summary[month] = totals
	}

	return summary, nil
}
