package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/dto"
)

var (
	ErrUpstreamFailure = errors.New("failed to fetch exchange rates")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// accessKeyTransport adds the provider's access key to every request
type accessKeyTransport struct {
	accessKey string
	base      http.RoundTripper
}

func (t *accessKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	q := req.URL.Query()
	q.Set("access_key", t.accessKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	return t.base.RoundTrip(req)
}

// ExchangeService fetches currency exchange rates from an external provider
type ExchangeService struct {
	config  *config.ExchangeConfig
	client  *http.Client
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewExchangeService creates a new exchange rate service
func NewExchangeService(
	cfg *config.ExchangeConfig,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExchangeServiceInterface {
	transport := &accessKeyTransport{
		accessKey: cfg.AccessKey,
		base:      http.DefaultTransport,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &ExchangeService{
		config:  cfg,
		client:  client,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchRates retrieves exchange rates for the base currency, restricted to
// the requested symbols. Upstream failures and responses without a usable
// rates map surface as ErrUpstreamFailure.
func (s *ExchangeService) FetchRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	if s.breaker.IsOpen() {
		s.metrics.RecordUpstreamCall("exchange_rates", "rejected", 0)
		return nil, ErrCircuitBreakerOpen
	}

	req, err := s.buildRequest(ctx, base, symbols)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.breaker.RecordFailure()
		s.metrics.RecordUpstreamCall("exchange_rates", "error", time.Since(start))
		s.logger.Error("exchange rates request failed",
			"base", base,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		s.breaker.RecordFailure()
		s.metrics.RecordUpstreamCall("exchange_rates", "error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.breaker.RecordFailure()
		s.metrics.RecordUpstreamCall("exchange_rates", "error", time.Since(start))
		s.logger.Error("exchange rates provider returned non-success status",
			"status", resp.StatusCode,
			"base", base)
		return nil, ErrUpstreamFailure
	}

	var payload dto.UpstreamRatesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.breaker.RecordFailure()
		s.metrics.RecordUpstreamCall("exchange_rates", "error", time.Since(start))
		return nil, fmt.Errorf("%w: invalid response body", ErrUpstreamFailure)
	}

	if len(payload.Rates) == 0 {
		s.breaker.RecordFailure()
		s.metrics.RecordUpstreamCall("exchange_rates", "error", time.Since(start))
		return nil, ErrUpstreamFailure
	}

	s.breaker.RecordSuccess()
	s.metrics.RecordUpstreamCall("exchange_rates", "success", time.Since(start))

	return payload.Rates, nil
}

func (s *ExchangeService) buildRequest(ctx context.Context, base string, symbols []string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := url.Values{}
	q.Set("base", base)
	if len(symbols) > 0 {
		q.Set("symbols", strings.Join(symbols, ","))
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}
