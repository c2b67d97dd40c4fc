package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// InfoHandler handles financial info endpoints
type InfoHandler struct {
	tipsService services.TipsServiceInterface
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(tipsService services.TipsServiceInterface) *InfoHandler {
	return &InfoHandler{
		tipsService: tipsService,
	}
}

// GetFinanceTip handles finance tip retrieval
// @Summary Get a finance tip
// @Description Get a randomly selected financial tip
// @Tags Info
// @Produce json
// @Success 200 {object} dto.FinanceTipResponse "A financial tip"
// @Router /info/finance-tip [get]
func (h *InfoHandler) GetFinanceTip(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.FinanceTipResponse{
		Tip: h.tipsService.RandomTip(),
	})
}

// GetAverageExpenses handles average expense retrieval
// @Summary Get average expenses per category
// @Description Get the average expense amount per category across all users, descending by average
// @Tags Info
// @Produce json
// @Success 200 {object} dto.AverageExpensesResponse "Average expense per category"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /info/average-expenses [get]
func (h *InfoHandler) GetAverageExpenses(c echo.Context) error {
	averages, err := h.tipsService.AverageExpenses()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AverageExpensesResponse{
		AverageExpenses: averages,
	})
}
