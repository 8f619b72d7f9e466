package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"currency-exchange-cli/internal/config"
	"currency-exchange-cli/internal/models"

	"github.com/sirupsen/logrus"
)

// StatusError reports a non-200 reply from the exchange rate API. The body is
// not inspected in that case; the status code is the whole signal.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request error with status code: %d", e.StatusCode)
}

// Client queries the ExchangeRate-API. Each method performs exactly one
// outbound GET and keeps no state between calls; the configuration is
// immutable after construction.
type Client struct {
	configuration *config.Config
	logger        *logrus.Logger
	httpClient    *http.Client
}

// New creates a new exchange rate client. The HTTP client carries no timeout;
// a call blocks until the context is cancelled or the transport gives up.
func New(configuration *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		configuration: configuration,
		logger:        logger,
		httpClient:    &http.Client{},
	}
}

// LatestRates returns the current conversion rates for a base currency. The
// currency code is passed through unvalidated; the remote API rejects codes
// it does not know.
func (client *Client) LatestRates(ctx context.Context, currency string) (map[string]float64, error) {
	client.logger.Debugf("Fetching latest rates for %s", currency)

	url := fmt.Sprintf("%s%s/latest/%s", client.configuration.BaseURL, client.configuration.APIKey, currency)

	var response models.LatestRatesResponse
	if err := client.getJSON(ctx, url, &response); err != nil {
		return nil, err
	}
	return response.ConversionRates, nil
}

// PairRate returns the conversion rate from one currency into another.
func (client *Client) PairRate(ctx context.Context, from, to string) (float64, error) {
	client.logger.Debugf("Fetching pair rate %s/%s", from, to)

	url := fmt.Sprintf("%s%s/pair/%s/%s", client.configuration.BaseURL, client.configuration.APIKey, from, to)

	var response models.PairRateResponse
	if err := client.getJSON(ctx, url, &response); err != nil {
		return 0, err
	}
	return response.ConversionRate, nil
}

// Convert returns the given amount of the source currency expressed in the
// target currency.
func (client *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	client.logger.Debugf("Converting %s/%s", from, to)

	url := fmt.Sprintf("%s%s/pair/%s/%s/%s",
		client.configuration.BaseURL, client.configuration.APIKey, from, to, formatAmount(amount))

	var response models.PairRateResponse
	if err := client.getJSON(ctx, url, &response); err != nil {
		return 0, err
	}
	return response.ConversionResult, nil
}

// HistoricalRates returns the conversion rates for a base currency on a past
// date. Date segments go into the path unpadded, the way the API documents
// them.
func (client *Client) HistoricalRates(ctx context.Context, currency string, year, month, day int) (map[string]float64, error) {
	client.logger.Debugf("Fetching historical rates for %s on %d-%d-%d", currency, year, month, day)

	url := fmt.Sprintf("%s%s/history/%s/%d/%d/%d",
		client.configuration.BaseURL, client.configuration.APIKey, currency, year, month, day)

	var response models.HistoryResponse
	if err := client.getJSON(ctx, url, &response); err != nil {
		return nil, err
	}
	return response.ConversionRates, nil
}

// getJSON performs one GET and decodes a 200 body into out. Any other status
// becomes a *StatusError; transport and decode failures are returned wrapped.
func (client *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: response.StatusCode}
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// FormatRates renders a rates mapping as two-space-indented JSON text, the
// presentation format for latest and historical rates.
func FormatRates(rates map[string]float64) (string, error) {
	formatted, err := json.MarshalIndent(rates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format rates: %w", err)
	}
	return string(formatted), nil
}

// formatAmount renders an amount for use as a URL path segment using the
// shortest exact representation.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
