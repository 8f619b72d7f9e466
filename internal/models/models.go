package models

import "time"

// LatestRatesResponse is the ExchangeRate-API body for the latest-rates
// endpoint.
type LatestRatesResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// PairRateResponse is the ExchangeRate-API body for the pair endpoint. The
// conversion result is only present when an amount was part of the request.
type PairRateResponse struct {
	Result           string  `json:"result"`
	BaseCode         string  `json:"base_code"`
	TargetCode       string  `json:"target_code"`
	ConversionRate   float64 `json:"conversion_rate"`
	ConversionResult float64 `json:"conversion_result,omitempty"`
}

// HistoryResponse is the ExchangeRate-API body for the historical-rates
// endpoint.
type HistoryResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	Year            int                `json:"year"`
	Month           int                `json:"month"`
	Day             int                `json:"day"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

type HealthCheck struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
