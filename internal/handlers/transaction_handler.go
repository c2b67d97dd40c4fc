package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction CRUD endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List handles transaction listing with filters
// @Summary List transactions
// @Description Get the authenticated user's transactions, optionally filtered by type, category, and date range
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Transaction type (INCOME or EXPENSE)"
// @Param category query string false "Category name"
// @Param startDate query string false "Start date (inclusive)"
// @Param endDate query string false "End date (inclusive)"
// @Param sortBy query string false "Sort field (date, amount, category, created_at)"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Success 200 {array} dto.TransactionResponse "Transactions matching the filters"
// @Failure 400 {object} errors.ErrorResponse "Invalid filter - TRANSACTION_002 or VALIDATION_004"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters := models.TransactionFilters{
		UserID:    userID,
		Type:      query.Type,
		Category:  query.Category,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}

	if query.StartDate != "" {
		start, err := parseDateParam(query.StartDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid startDate"))
		}
		filters.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := parseDateParam(query.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid endDate"))
		}
		filters.EndDate = &end
	}

	transactions, err := h.transactionService.List(filters)
	if err != nil {
		switch err {
		case services.ErrInvalidType:
			return SendError(c, errors.TransactionInvalidType)
		case services.ErrInvalidSortField:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid sort field"))
		default:
			return SendSystemError(c, err)
		}
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Create handles transaction creation
// @Summary Create a transaction
// @Description Record a new income or expense transaction for the authenticated user
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse "Transaction created"
// @Failure 400 {object} errors.ErrorResponse "Missing fields - TRANSACTION_003, invalid type - TRANSACTION_002"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		switch err {
		case services.ErrMissingRequiredFields:
			return SendError(c, errors.TransactionMissingFields)
		case services.ErrInvalidType:
			return SendError(c, errors.TransactionInvalidType)
		case services.ErrInvalidDate:
			return SendError(c, errors.ValidationInvalidDate)
		case models.ErrNegativeAmount:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Amount cannot be negative"))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// Update handles partial transaction updates
// @Summary Update a transaction
// @Description Apply a partial update to a transaction owned by the authenticated user
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse "Updated transaction"
// @Failure 400 {object} errors.ErrorResponse "Invalid update - TRANSACTION_002 or VALIDATION_004"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 403 {object} errors.ErrorResponse "Not the owner - TRANSACTION_004"
// @Failure 404 {object} errors.ErrorResponse "Transaction not found - TRANSACTION_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Update(transactionID, &req, userID)
	if err != nil {
		switch err {
		case services.ErrTransactionNotFound:
			return SendError(c, errors.TransactionNotFound)
		case services.ErrTransactionForbidden:
			return SendError(c, errors.TransactionForbidden)
		case services.ErrInvalidType:
			return SendError(c, errors.TransactionInvalidType)
		case services.ErrInvalidDate:
			return SendError(c, errors.ValidationInvalidDate)
		case models.ErrNegativeAmount:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Amount cannot be negative"))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// Delete handles transaction deletion
// @Summary Delete a transaction
// @Description Delete a transaction owned by the authenticated user
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} SuccessResponse{message=string} "Transaction deleted"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 403 {object} errors.ErrorResponse "Not the owner - TRANSACTION_004"
// @Failure 404 {object} errors.ErrorResponse "Transaction not found - TRANSACTION_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionService.Delete(transactionID, userID); err != nil {
		switch err {
		case services.ErrTransactionNotFound:
			return SendError(c, errors.TransactionNotFound)
		case services.ErrTransactionForbidden:
			return SendError(c, errors.TransactionForbidden)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transaction deleted successfully",
	})
}

// toTransactionResponse maps a transaction model to its API representation
func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// parseDateParam accepts RFC 3339 timestamps and plain dates in query parameters
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", value)
}
