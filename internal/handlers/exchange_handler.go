package handlers

import (
	"net/http"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ExchangeHandler handles exchange rate and report endpoints
type ExchangeHandler struct {
	exchangeService services.ExchangeServiceInterface
	reportService   services.ReportServiceInterface
}

// NewExchangeHandler creates a new exchange rate handler
func NewExchangeHandler(
	exchangeService services.ExchangeServiceInterface,
	reportService services.ReportServiceInterface,
) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeService: exchangeService,
		reportService:   reportService,
	}
}

// GetRates handles exchange rate retrieval
// @Summary Get exchange rates
// @Description Get exchange rates for a base currency against the requested target currencies
// @Tags Exchange
// @Security BearerAuth
// @Produce json
// @Param base query string true "Base currency code"
// @Param symbols query string true "Comma-separated target currency codes"
// @Success 200 {object} dto.ExchangeRatesResponse "Exchange rates keyed by currency code"
// @Failure 400 {object} errors.ErrorResponse "Missing parameter - VALIDATION_002, invalid currency - EXCHANGE_002"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "Upstream failure - EXCHANGE_001"
// @Router /exchange-rates [get]
func (h *ExchangeHandler) GetRates(c echo.Context) error {
	base := c.QueryParam("base")
	if base == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Base currency is required"))
	}

	symbolsParam := c.QueryParam("symbols")
	if symbolsParam == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Target currencies (symbols) are required"))
	}

	symbols := strings.Split(symbolsParam, ",")

	rates, err := h.exchangeService.FetchRates(c.Request().Context(), base, symbols)
	if err != nil {
		if err == services.ErrCircuitBreakerOpen {
			return SendError(c, errors.SystemServiceUnavailable)
		}
		return SendError(c, errors.ExchangeUpstreamFailure)
	}

	if _, ok := rates[base]; !ok {
		return SendError(c, errors.ExchangeInvalidCurrency)
	}

	return c.JSON(http.StatusOK, dto.ExchangeRatesResponse{
		Base:  base,
		Rates: rates,
	})
}

// DownloadReport handles CSV report download
// @Summary Download exchange rate report
// @Description Download a CSV report of exchange rates for the requested currencies
// @Tags Exchange
// @Security BearerAuth
// @Produce text/csv
// @Param base query string true "Base currency code"
// @Param symbols query string true "Comma-separated target currency codes"
// @Success 200 {string} string "CSV report with currency,rate rows"
// @Failure 400 {object} errors.ErrorResponse "Missing parameter - VALIDATION_002"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "Upstream failure - EXCHANGE_001"
// @Router /transactions/report [get]
func (h *ExchangeHandler) DownloadReport(c echo.Context) error {
	base := c.QueryParam("base")
	if base == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Base currency is required"))
	}

	symbolsParam := c.QueryParam("symbols")
	if symbolsParam == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Target currencies (symbols) are required"))
	}

	symbols := strings.Split(symbolsParam, ",")

	report, err := h.reportService.BuildCSVReport(c.Request().Context(), base, symbols)
	if err != nil {
		if err == services.ErrCircuitBreakerOpen {
			return SendError(c, errors.SystemServiceUnavailable)
		}
		return SendError(c, errors.ExchangeUpstreamFailure)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions_report.csv"`)
	return c.Blob(http.StatusOK, "text/csv", report)
}
