package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	handler            *TransactionHandler
	e                  *echo.Echo
	userID             uuid.UUID
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactionService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) newContext(method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewBuffer(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *TransactionHandlerSuite) sampleTransaction() *models.Transaction {
	return &models.Transaction{
		ID:       uuid.New(),
		UserID:   s.userID,
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(42.50),
		Category: "Food",
		Date:     time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TransactionHandlerSuite) TestList() {
	s.Run("returns transactions with filters applied", func() {
		query := url.Values{}
		query.Set("type", "EXPENSE")
		query.Set("category", "Food")
		query.Set("startDate", "2024-01-01")
		query.Set("endDate", "2024-12-31")
		query.Set("sortBy", "amount")
		query.Set("sortOrder", "desc")

		transaction := s.sampleTransaction()
		s.transactionService.EXPECT().
			List(gomock.Any()).
			DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, error) {
				s.Equal(s.userID, filters.UserID)
				s.Equal("EXPENSE", filters.Type)
				s.Equal("Food", filters.Category)
				s.Equal("amount", filters.SortBy)
				s.Equal("desc", filters.SortOrder)
				s.NotNil(filters.StartDate)
				s.NotNil(filters.EndDate)
				s.Equal(2024, filters.StartDate.Year())
				return []models.Transaction{*transaction}, nil
			}).
			Times(1)

		c, rec := s.newContext(http.MethodGet, "/transactions?"+query.Encode(), nil)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusOK, rec.Code)

		var response []map[string]interface{}
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Len(response, 1)
		s.Equal(transaction.ID.String(), response[0]["id"])
		s.Equal("Food", response[0]["category"])
	})

	s.Run("returns empty array when user has no transactions", func() {
		s.transactionService.EXPECT().
			List(gomock.Any()).
			Return([]models.Transaction{}, nil).
			Times(1)

		c, rec := s.newContext(http.MethodGet, "/transactions", nil)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("invalid start date", func() {
		c, rec := s.newContext(http.MethodGet, "/transactions?startDate=12-31-2024", nil)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("VALIDATION_004", errorResp.Error.Code)
	})

	s.Run("invalid transaction type", func() {
		s.transactionService.EXPECT().
			List(gomock.Any()).
			Return(nil, services.ErrInvalidType).
			Times(1)

		c, rec := s.newContext(http.MethodGet, "/transactions?type=TRANSFER", nil)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("TRANSACTION_002", errorResp.Error.Code)
	})

	s.Run("invalid sort field", func() {
		s.transactionService.EXPECT().
			List(gomock.Any()).
			Return(nil, services.ErrInvalidSortField).
			Times(1)

		c, rec := s.newContext(http.MethodGet, "/transactions?sortBy=password", nil)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("VALIDATION_001", errorResp.Error.Code)
	})

	s.Run("missing user in context", func() {
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		rec := httptest.NewRecorder()
		c := s.e.NewContext(req, rec)

		err := s.handler.List(c)
		s.NoError(err)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *TransactionHandlerSuite) TestCreate() {
	s.Run("successful creation", func() {
		amount := decimal.NewFromFloat(42.50)
		reqBody := map[string]interface{}{
			"type":        "EXPENSE",
			"amount":      amount,
			"category":    "Food",
			"date":        "2024-12-01",
			"description": "Groceries",
		}

		transaction := s.sampleTransaction()
		transaction.Description = "Groceries"

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(transaction, nil).
			Times(1)

		c, rec := s.newContext(http.MethodPost, "/transactions", reqBody)

		err := s.handler.Create(c)
		s.NoError(err)
		s.Equal(http.StatusCreated, rec.Code)

		var response map[string]interface{}
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal(transaction.ID.String(), response["id"])
		s.Equal(s.userID.String(), response["userId"])
		s.Equal("EXPENSE", response["type"])
		s.Equal("Groceries", response["description"])
	})

	s.Run("missing required fields", func() {
		reqBody := map[string]interface{}{
			"type": "EXPENSE",
		}

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(nil, services.ErrMissingRequiredFields).
			Times(1)

		c, rec := s.newContext(http.MethodPost, "/transactions", reqBody)

		err := s.handler.Create(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("TRANSACTION_003", errorResp.Error.Code)
	})

	s.Run("invalid type rejected by validator", func() {
		reqBody := map[string]interface{}{
			"type":     "TRANSFER",
			"amount":   decimal.NewFromInt(10),
			"category": "Food",
			"date":     "2024-12-01",
		}

		c, _ := s.newContext(http.MethodPost, "/transactions", reqBody)

		// Validation failures propagate to the HTTP error handler
		err := s.handler.Create(c)
		s.Error(err)
	})

	s.Run("invalid date rejected by validator", func() {
		reqBody := map[string]interface{}{
			"type":     "EXPENSE",
			"amount":   decimal.NewFromInt(10),
			"category": "Food",
			"date":     "01-12-2024",
		}

		c, _ := s.newContext(http.MethodPost, "/transactions", reqBody)

		err := s.handler.Create(c)
		s.Error(err)
	})

	s.Run("negative amount", func() {
		reqBody := map[string]interface{}{
			"type":     "EXPENSE",
			"amount":   decimal.NewFromInt(-5),
			"category": "Food",
			"date":     "2024-12-01",
		}

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(nil, models.ErrNegativeAmount).
			Times(1)

		c, rec := s.newContext(http.MethodPost, "/transactions", reqBody)

		err := s.handler.Create(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("VALIDATION_001", errorResp.Error.Code)
		s.Contains(errorResp.Error.Details, "Amount cannot be negative")
	})

	s.Run("invalid request body", func() {
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString("not json"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := s.e.NewContext(req, rec)
		c.Set("user_id", s.userID)

		err := s.handler.Create(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *TransactionHandlerSuite) TestUpdate() {
	s.Run("successful update", func() {
		transaction := s.sampleTransaction()
		transaction.Category = "Dining"

		reqBody := map[string]interface{}{
			"category": "Dining",
		}

		s.transactionService.EXPECT().
			Update(transaction.ID, gomock.Any(), s.userID).
			Return(transaction, nil).
			Times(1)

		c, rec := s.newContext(http.MethodPut, "/transactions/"+transaction.ID.String(), reqBody)
		c.SetParamNames("id")
		c.SetParamValues(transaction.ID.String())

		err := s.handler.Update(c)
		s.NoError(err)
		s.Equal(http.StatusOK, rec.Code)

		var response map[string]interface{}
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("Dining", response["category"])
	})

	s.Run("malformed transaction ID", func() {
		c, rec := s.newContext(http.MethodPut, "/transactions/not-a-uuid", map[string]interface{}{})
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		err := s.handler.Update(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("VALIDATION_003", errorResp.Error.Code)
	})

	s.Run("transaction not found", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Update(transactionID, gomock.Any(), s.userID).
			Return(nil, services.ErrTransactionNotFound).
			Times(1)

		c, rec := s.newContext(http.MethodPut, "/transactions/"+transactionID.String(), map[string]interface{}{"category": "Dining"})
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Update(c)
		s.NoError(err)
		s.Equal(http.StatusNotFound, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("TRANSACTION_001", errorResp.Error.Code)
	})

	s.Run("transaction owned by another user", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Update(transactionID, gomock.Any(), s.userID).
			Return(nil, services.ErrTransactionForbidden).
			Times(1)

		c, rec := s.newContext(http.MethodPut, "/transactions/"+transactionID.String(), map[string]interface{}{"category": "Dining"})
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Update(c)
		s.NoError(err)
		s.Equal(http.StatusForbidden, rec.Code)

		var errorResp ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
		s.Equal("TRANSACTION_004", errorResp.Error.Code)
	})

	s.Run("invalid type rejected by validator", func() {
		transactionID := uuid.New()

		c, _ := s.newContext(http.MethodPut, "/transactions/"+transactionID.String(), map[string]interface{}{"type": "TRANSFER"})
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Update(c)
		s.Error(err)
	})
}

func (s *TransactionHandlerSuite) TestDelete() {
	s.Run("successful deletion", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Delete(transactionID, s.userID).
			Return(nil).
			Times(1)

		c, rec := s.newContext(http.MethodDelete, "/transactions/"+transactionID.String(), nil)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Delete(c)
		s.NoError(err)
		s.Equal(http.StatusOK, rec.Code)

		var response SuccessResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("Transaction deleted successfully", response.Message)
	})

	s.Run("transaction not found", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Delete(transactionID, s.userID).
			Return(services.ErrTransactionNotFound).
			Times(1)

		c, rec := s.newContext(http.MethodDelete, "/transactions/"+transactionID.String(), nil)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Delete(c)
		s.NoError(err)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("transaction owned by another user", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Delete(transactionID, s.userID).
			Return(services.ErrTransactionForbidden).
			Times(1)

		c, rec := s.newContext(http.MethodDelete, "/transactions/"+transactionID.String(), nil)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		err := s.handler.Delete(c)
		s.NoError(err)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("malformed transaction ID", func() {
		c, rec := s.newContext(http.MethodDelete, "/transactions/42", nil)
		c.SetParamNames("id")
		c.SetParamValues("42")

		err := s.handler.Delete(c)
		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
