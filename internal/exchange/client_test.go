package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"currency-exchange-cli/internal/testutils"
)

func newTestClient(api *testutils.MockExchangeAPI) *Client {
	return New(testutils.MockConfig(api.BaseURL()), testutils.MockLogger())
}

func TestClient_LatestRates(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	rates, err := client.LatestRates(context.Background(), "USD")
	if err != nil {
		t.Fatalf("LatestRates() error = %v", err)
	}

	if rates["EUR"] != 0.9 {
		t.Errorf("LatestRates() EUR rate = %v, want %v", rates["EUR"], 0.9)
	}
	if len(api.Requests) != 1 {
		t.Fatalf("LatestRates() request count = %v, want 1", len(api.Requests))
	}
	if api.Requests[0] != "/test-api-key/latest/USD" {
		t.Errorf("LatestRates() request path = %v, want /test-api-key/latest/USD", api.Requests[0])
	}
}

func TestClient_LatestRates_IndentedText(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	rates, err := client.LatestRates(context.Background(), "USD")
	if err != nil {
		t.Fatalf("LatestRates() error = %v", err)
	}

	formatted, err := FormatRates(rates)
	if err != nil {
		t.Fatalf("FormatRates() error = %v", err)
	}

	want := "{\n  \"EUR\": 0.9\n}"
	if formatted != want {
		t.Errorf("FormatRates() = %q, want %q", formatted, want)
	}
}

func TestClient_PairRate(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	rate, err := client.PairRate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("PairRate() error = %v", err)
	}

	if rate != 1.23 {
		t.Errorf("PairRate() = %v, want %v", rate, 1.23)
	}
	if api.Requests[0] != "/test-api-key/pair/USD/EUR" {
		t.Errorf("PairRate() request path = %v, want /test-api-key/pair/USD/EUR", api.Requests[0])
	}
}

func TestClient_Convert(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	result, err := client.Convert(context.Background(), "USD", "EUR", 100.0)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if result != 91.4 {
		t.Errorf("Convert() = %v, want %v", result, 91.4)
	}
	if api.Requests[0] != "/test-api-key/pair/USD/EUR/100" {
		t.Errorf("Convert() request path = %v, want /test-api-key/pair/USD/EUR/100", api.Requests[0])
	}
}

func TestClient_Convert_FractionalAmount(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	if _, err := client.Convert(context.Background(), "USD", "EUR", 99.95); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if api.Requests[0] != "/test-api-key/pair/USD/EUR/99.95" {
		t.Errorf("Convert() request path = %v, want /test-api-key/pair/USD/EUR/99.95", api.Requests[0])
	}
}

func TestClient_HistoricalRates(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)

	rates, err := client.HistoricalRates(context.Background(), "USD", 2023, 5, 17)
	if err != nil {
		t.Fatalf("HistoricalRates() error = %v", err)
	}

	if rates["EUR"] != 0.9 {
		t.Errorf("HistoricalRates() EUR rate = %v, want %v", rates["EUR"], 0.9)
	}
	if !strings.Contains(api.Requests[0], "history/USD/2023/5/17") {
		t.Errorf("HistoricalRates() request path = %v, want it to contain history/USD/2023/5/17", api.Requests[0])
	}
}

func TestClient_StatusError(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)
	ctx := context.Background()

	operations := []struct {
		name   string
		invoke func() error
	}{
		{"LatestRates", func() error {
			_, err := client.LatestRates(ctx, "USD")
			return err
		}},
		{"PairRate", func() error {
			_, err := client.PairRate(ctx, "USD", "EUR")
			return err
		}},
		{"Convert", func() error {
			_, err := client.Convert(ctx, "USD", "EUR", 100.0)
			return err
		}},
		{"HistoricalRates", func() error {
			_, err := client.HistoricalRates(ctx, "USD", 2023, 5, 17)
			return err
		}},
	}

	statuses := []int{400, 401, 403, 404, 429, 500, 503}

	for _, status := range statuses {
		api.ForcedStatus = status

		for _, operation := range operations {
			t.Run(fmt.Sprintf("%s_%d", operation.name, status), func(t *testing.T) {
				err := operation.invoke()
				if err == nil {
					t.Fatalf("%s expected error, got nil", operation.name)
				}

				want := fmt.Sprintf("Request error with status code: %d", status)
				if err.Error() != want {
					t.Errorf("%s error = %q, want %q", operation.name, err.Error(), want)
				}

				var statusError *StatusError
				if !errors.As(err, &statusError) {
					t.Fatalf("%s error is not a *StatusError", operation.name)
				}
				if statusError.StatusCode != status {
					t.Errorf("%s status code = %v, want %v", operation.name, statusError.StatusCode, status)
				}
			})
		}
	}
}

func TestClient_TransportError(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	client := newTestClient(api)
	api.Close()

	_, err := client.LatestRates(context.Background(), "USD")
	if err == nil {
		t.Fatal("LatestRates() expected error, got nil")
	}

	var statusError *StatusError
	if errors.As(err, &statusError) {
		t.Errorf("LatestRates() transport failure classified as *StatusError: %v", err)
	}
}

func TestClient_Idempotent(t *testing.T) {
	api := testutils.NewMockExchangeAPI()
	defer api.Close()

	client := newTestClient(api)
	ctx := context.Background()

	first, err := client.LatestRates(ctx, "USD")
	if err != nil {
		t.Fatalf("LatestRates() first call error = %v", err)
	}
	second, err := client.LatestRates(ctx, "USD")
	if err != nil {
		t.Fatalf("LatestRates() second call error = %v", err)
	}

	firstText, _ := FormatRates(first)
	secondText, _ := FormatRates(second)
	if firstText != secondText {
		t.Errorf("LatestRates() results differ between calls: %q vs %q", firstText, secondText)
	}

	// Two calls, two outbound requests: no hidden caching.
	if len(api.Requests) != 2 {
		t.Errorf("LatestRates() request count = %v, want 2", len(api.Requests))
	}
}

func TestFormatRates(t *testing.T) {
	tests := []struct {
		name  string
		rates map[string]float64
		want  string
	}{
		{
			name:  "single rate",
			rates: map[string]float64{"EUR": 0.9},
			want:  "{\n  \"EUR\": 0.9\n}",
		},
		{
			name:  "keys sorted",
			rates: map[string]float64{"GBP": 0.73, "EUR": 0.85},
			want:  "{\n  \"EUR\": 0.85,\n  \"GBP\": 0.73\n}",
		},
		{
			name:  "empty mapping",
			rates: map[string]float64{},
			want:  "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatRates(tt.rates)
			if err != nil {
				t.Fatalf("FormatRates() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatRates() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole number", 100.0, "100"},
		{"fractional", 99.95, "99.95"},
		{"small fraction", 0.5, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAmount(tt.amount); got != tt.want {
				t.Errorf("formatAmount(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
