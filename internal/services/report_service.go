package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

// ReportService renders currency exchange reports
type ReportService struct {
	exchangeService ExchangeServiceInterface
}

// NewReportService creates a new report service
func NewReportService(exchangeService ExchangeServiceInterface) ReportServiceInterface {
	return &ReportService{
		exchangeService: exchangeService,
	}
}

// BuildCSVReport fetches exchange rates for the base currency and renders
// them as a two-column CSV with a fixed header. Rows are ordered by
// currency code so the output is deterministic.
func (s *ReportService) BuildCSVReport(ctx context.Context, base string, symbols []string) ([]byte, error) {
	rates, err := s.exchangeService.FetchRates(ctx, base, symbols)
	if err != nil {
		return nil, err
	}

	currencies := make([]string, 0, len(rates))
	for currency := range rates {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"currency", "rate"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, currency := range currencies {
		rate := strconv.FormatFloat(rates[currency], 'f', -1, 64)
		if err := writer.Write([]string{currency, rate}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
