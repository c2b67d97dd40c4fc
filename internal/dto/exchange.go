package dto

// ExchangeRatesResponse contains exchange rates keyed by currency code
type ExchangeRatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// UpstreamRatesPayload mirrors the rate provider's response body
type UpstreamRatesPayload struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Rates   map[string]float64 `json:"rates"`
}
