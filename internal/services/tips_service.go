package services

import (
	"fmt"
	"math/rand"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
)

// financialTips is the fixed pool served by the finance-tip endpoint
var financialTips = []string{
	"Set aside at least 20% of your income for savings and investments.",
	"Track your spending regularly to identify unnecessary expenses.",
	"Limit dining out expenses to 10% of your monthly budget.",
	"Shop during sales and use discounts to save on grocery expenses.",
	"Avoid borrowing money to buy depreciating assets like cars and gadgets.",
	"Invest in your education and skills to increase your earning potential.",
	"Start a side hustle or freelance work to earn extra income.",
	"Avoid emotional spending by waiting 24 hours before making a purchase.",
	"Use cash or debit cards instead of credit cards to avoid debt.",
	"Review your insurance coverage to ensure you are not overpaying for premiums.",
}

// TipsService serves financial tips and global spending statistics
type TipsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewTipsService creates a new tips service
func NewTipsService(transactionRepo repositories.TransactionRepositoryInterface) TipsServiceInterface {
	return &TipsService{
		transactionRepo: transactionRepo,
	}
}

// RandomTip returns a uniformly random tip from the fixed pool
func (s *TipsService) RandomTip() string {
	return financialTips[rand.Intn(len(financialTips))]
}

// AverageExpenses returns average expense amounts per category across all users
func (s *TipsService) AverageExpenses() ([]models.AverageExpense, error) {
	averages, err := s.transactionRepo.GetAverageExpensesByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to get average expenses: %w", err)
	}

	if averages == nil {
		averages = []models.AverageExpense{}
	}

	return averages, nil
}
