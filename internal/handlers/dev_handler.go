package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints.
// These routes are registered only when the server runs in development mode.
type DevHandler struct {
	seedService services.SeedServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(seedService services.SeedServiceInterface) *DevHandler {
	return &DevHandler{
		seedService: seedService,
	}
}

// SeedDemoData populates the database with fake users and transactions
// @Summary Seed demo data
// @Description Generate fake users and transactions for local development
// @Tags Dev
// @Produce json
// @Param users query int false "Number of users to create (default 5, max 50)"
// @Param transactions query int false "Transactions per user (default 50, max 500)"
// @Success 200 {object} SuccessResponse{data=dto.SeedSummary} "Seeding summary"
// @Failure 400 {object} errors.ErrorResponse "Invalid count - VALIDATION_003"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /dev/seed [post]
func (h *DevHandler) SeedDemoData(c echo.Context) error {
	userCount, err := parseCountParam(c.QueryParam("users"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("users must be a non-negative integer"))
	}

	transactionsPerUser, err := parseCountParam(c.QueryParam("transactions"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("transactions must be a non-negative integer"))
	}

	summary, err := h.seedService.SeedDemoData(userCount, transactionsPerUser)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    summary,
		Message: "Demo data generated successfully",
	})
}

func parseCountParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("invalid count parameter %q", value)
	}

	return count, nil
}
