package services

import (
	"context"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PasswordServiceInterface defines password hashing operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// AuthServiceInterface defines authentication business logic
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// TransactionServiceInterface defines transaction business logic
type TransactionServiceInterface interface {
	List(filters models.TransactionFilters) ([]models.Transaction, error)
	Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Update(id uuid.UUID, req *dto.UpdateTransactionRequest, userID uuid.UUID) (*models.Transaction, error)
	Delete(id uuid.UUID, userID uuid.UUID) error
}

// AnalyticsServiceInterface defines derived analytics over a user's transactions
type AnalyticsServiceInterface interface {
	GetBalance(userID uuid.UUID, types []string) (decimal.Decimal, error)
	GetCategoryStats(userID uuid.UUID) ([]models.CategoryStat, error)
	GetMonthlySummary(userID uuid.UUID) (models.MonthlySummary, error)
}

// ExchangeServiceInterface defines exchange rate retrieval
type ExchangeServiceInterface interface {
	FetchRates(ctx context.Context, base string, symbols []string) (map[string]float64, error)
}

// ReportServiceInterface defines report rendering
type ReportServiceInterface interface {
	BuildCSVReport(ctx context.Context, base string, symbols []string) ([]byte, error)
}

// TipsServiceInterface defines financial info operations
type TipsServiceInterface interface {
	RandomTip() string
	AverageExpenses() ([]models.AverageExpense, error)
}

// SeedServiceInterface defines demo data seeding for development environments
type SeedServiceInterface interface {
	SeedDemoData(userCount, transactionsPerUser int) (*dto.SeedSummary, error)
}

// CircuitBreakerInterface guards calls to the exchange rate upstream
type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	RecordAuthEvent(event, outcome string)
	RecordTransactionOperation(operation, outcome string)
	RecordCacheAccess(cacheName, outcome string)
	RecordUpstreamCall(upstream, outcome string, duration time.Duration)
}
