package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	defaultSeedUsers        = 5
	defaultSeedTransactions = 50
	maxSeedUsers            = 50
	maxSeedTransactions     = 500

	// Every seeded account gets the same known password so demo
	// logins work out of the box
	seedPassword = "DemoPassword123"
)

var seedExpenseCategories = []string{
	"Food",
	"Rent",
	"Transport",
	"Entertainment",
	"Utilities",
	"Health",
	"Shopping",
	"Travel",
}

var seedIncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Gifts",
}

// SeedService populates the database with realistic demo data.
// Intended for development environments only.
type SeedService struct {
	userRepo        repositories.UserRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	passwordService PasswordServiceInterface
	faker           *gofakeit.Faker
	logger          *slog.Logger
}

// NewSeedService creates a new demo data seeder
func NewSeedService(
	userRepo repositories.UserRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	passwordService PasswordServiceInterface,
	logger *slog.Logger,
) SeedServiceInterface {
	return &SeedService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		passwordService: passwordService,
		faker:           gofakeit.New(0),
		logger:          logger,
	}
}

// SeedDemoData creates fake users with a spread of income and expense
// transactions over the last year. Counts are clamped to sane bounds.
func (s *SeedService) SeedDemoData(userCount, transactionsPerUser int) (*dto.SeedSummary, error) {
	if userCount <= 0 {
		userCount = defaultSeedUsers
	}
	if userCount > maxSeedUsers {
		userCount = maxSeedUsers
	}
	if transactionsPerUser <= 0 {
		transactionsPerUser = defaultSeedTransactions
	}
	if transactionsPerUser > maxSeedTransactions {
		transactionsPerUser = maxSeedTransactions
	}

	passwordHash, err := s.passwordService.HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	summary := &dto.SeedSummary{}

	for i := 0; i < userCount; i++ {
		user := &models.User{
			Name:         s.faker.Name(),
			Email:        s.faker.Email(),
			PasswordHash: passwordHash,
		}

		if err := s.userRepo.Create(user); err != nil {
			// Generated emails can collide with existing rows, skip and move on
			s.logger.Warn("Skipping seed user",
				"email", user.Email,
				"error", err.Error(),
			)
			continue
		}
		summary.UsersCreated++

		created, err := s.seedTransactions(user, transactionsPerUser)
		summary.TransactionsCreated += created
		if err != nil {
			return summary, err
		}
	}

	s.logger.Info("Demo data seeded",
		"users_created", summary.UsersCreated,
		"transactions_created", summary.TransactionsCreated,
	)

	return summary, nil
}

func (s *SeedService) seedTransactions(user *models.User, count int) (int, error) {
	now := time.Now()
	yearAgo := now.AddDate(-1, 0, 0)

	created := 0
	for i := 0; i < count; i++ {
		transaction := &models.Transaction{
			UserID:      user.ID,
			Date:        s.faker.DateRange(yearAgo, now),
			Description: s.faker.Sentence(4),
		}

		// Roughly one income for every four expenses
		if s.faker.IntRange(1, 5) == 1 {
			transaction.Type = models.TransactionTypeIncome
			transaction.Category = s.faker.RandomString(seedIncomeCategories)
			transaction.Amount = decimal.NewFromFloat(s.faker.Price(1000, 6000))
		} else {
			transaction.Type = models.TransactionTypeExpense
			transaction.Category = s.faker.RandomString(seedExpenseCategories)
			transaction.Amount = decimal.NewFromFloat(s.faker.Price(5, 400))
		}

		if err := s.transactionRepo.Create(transaction); err != nil {
			return created, fmt.Errorf("failed to create seed transaction: %w", err)
		}
		created++
	}

	return created, nil
}
