package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles derived analytics endpoints
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetBalance handles balance retrieval
// @Summary Get current balance
// @Description Get the authenticated user's balance, computed as total income minus total expenses
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BalanceResponse "Current balance"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /analytics/balance [get]
func (h *AnalyticsHandler) GetBalance(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	balance, err := h.analyticsService.GetBalance(userID, []string{
		models.TransactionTypeIncome,
		models.TransactionTypeExpense,
	})
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		CurrentBalance: balance,
	})
}

// GetCategoryStats handles category statistics retrieval
// @Summary Get category statistics
// @Description Get total expense amounts per category for the authenticated user, cached per user
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CategoryStatsResponse "Per-category expense totals"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetCategoryStats(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	stats, err := h.analyticsService.GetCategoryStats(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryStatsResponse{
		Stats: stats,
	})
}

// GetMonthlySummary handles monthly summary retrieval
// @Summary Get monthly summary
// @Description Get income and expense totals per calendar month for the authenticated user
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MonthlySummaryResponse "Monthly income and expense totals"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthlySummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.analyticsService.GetMonthlySummary(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MonthlySummaryResponse{
		MonthlySummary: summary,
	})
}
