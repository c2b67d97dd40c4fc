package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionForbidden  = errors.New("unauthorized user")
	ErrMissingRequiredFields = errors.New("all fields except description are required")
	ErrInvalidType           = errors.New("invalid transaction type")
	ErrInvalidSortField      = errors.New("invalid sort field")
	ErrInvalidDate           = errors.New("invalid date format")
)

// TransactionService handles transaction business logic: filtering,
// ownership checks and partial updates
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// List retrieves the caller's transactions matching the filter criteria
func (s *TransactionService) List(filters models.TransactionFilters) ([]models.Transaction, error) {
	if filters.UserID == uuid.Nil {
		return nil, errors.New("user ID is required")
	}

	if filters.Type != "" && !models.IsValidTransactionType(filters.Type) {
		return nil, ErrInvalidType
	}

	if filters.SortBy != "" && !models.IsSortableField(filters.SortBy) {
		return nil, ErrInvalidSortField
	}

	return s.transactionRepo.GetWithFilters(filters)
}

// Create stores a new transaction owned by the authenticated caller.
// Any owner supplied in the request body is ignored.
func (s *TransactionService) Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Type == "" || req.Amount == nil || req.Category == "" || req.Date == "" {
		return nil, ErrMissingRequiredFields
	}

	if !models.IsValidTransactionType(req.Type) {
		return nil, ErrInvalidType
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        req.Type,
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		s.metrics.RecordTransactionOperation("create", "error")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.metrics.RecordTransactionOperation("create", "success")
	s.logger.Info("transaction created",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"type", transaction.Type)

	return transaction, nil
}

// Update applies a partial update after verifying the transaction exists and
// belongs to the caller. The record is fetched first so a missing id and a
// foreign owner produce distinct errors.
func (s *TransactionService) Update(id uuid.UUID, req *dto.UpdateTransactionRequest, userID uuid.UUID) (*models.Transaction, error) {
	existing, err := s.findOwnedTransaction(id, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if req.Type != nil {
		if !models.IsValidTransactionType(*req.Type) {
			return nil, ErrInvalidType
		}
		fields["type"] = *req.Type
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, models.ErrNegativeAmount
		}
		fields["amount"] = *req.Amount
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		fields["date"] = date
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) == 0 {
		return existing, nil
	}

	fields["updated_at"] = time.Now()

	updated, err := s.transactionRepo.Update(id, fields)
	if err != nil {
		s.metrics.RecordTransactionOperation("update", "error")
		return nil, err
	}

	s.metrics.RecordTransactionOperation("update", "success")

	return updated, nil
}

// Delete removes a transaction after the same existence and ownership checks as Update
func (s *TransactionService) Delete(id uuid.UUID, userID uuid.UUID) error {
	if _, err := s.findOwnedTransaction(id, userID); err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(id); err != nil {
		s.metrics.RecordTransactionOperation("delete", "error")
		return err
	}

	s.metrics.RecordTransactionOperation("delete", "success")
	s.logger.Info("transaction deleted", "transaction_id", id, "user_id", userID)

	return nil
}

// findOwnedTransaction fetches a transaction and verifies the caller owns it
func (s *TransactionService) findOwnedTransaction(id uuid.UUID, userID uuid.UUID) (*models.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrTransactionForbidden
	}

	return existing, nil
}

// parseDate accepts RFC 3339 timestamps and plain dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", value)
}
