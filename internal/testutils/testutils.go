package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"currency-exchange-cli/internal/config"
	"currency-exchange-cli/internal/logger"

	"github.com/sirupsen/logrus"
)

// MockLogger creates a quiet logger for testing
func MockLogger() *logrus.Logger {
	return logger.New("error")
}

// MockConfig creates a test configuration pointed at the given API base URL.
// The base URL must end with a slash.
func MockConfig(baseURL string) *config.Config {
	return &config.Config{
		APIKey:   "test-api-key",
		BaseURL:  baseURL,
		Port:     "0",
		LogLevel: "error",
	}
}

// MockExchangeAPI emulates the ExchangeRate-API endpoints for tests. The
// response values are scriptable, and every request path is recorded in
// order.
type MockExchangeAPI struct {
	server *httptest.Server

	// ForcedStatus, when set to anything other than zero or 200, is returned
	// for every request regardless of path.
	ForcedStatus int

	Rates            map[string]float64
	PairRate         float64
	ConversionResult float64

	Requests []string
}

// NewMockExchangeAPI starts a mock API with default responses.
func NewMockExchangeAPI() *MockExchangeAPI {
	mock := &MockExchangeAPI{
		Rates:            map[string]float64{"EUR": 0.9},
		PairRate:         1.23,
		ConversionResult: 91.4,
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// BaseURL returns the mock server URL in the form the client's configuration
// expects.
func (m *MockExchangeAPI) BaseURL() string {
	return m.server.URL + "/"
}

// Close shuts down the mock server
func (m *MockExchangeAPI) Close() {
	m.server.Close()
}

// handler routes requests the way the real API does: the first path segment
// is the API key, the second the operation.
func (m *MockExchangeAPI) handler(w http.ResponseWriter, r *http.Request) {
	m.Requests = append(m.Requests, r.URL.Path)

	if m.ForcedStatus != 0 && m.ForcedStatus != http.StatusOK {
		http.Error(w, "forced failure", m.ForcedStatus)
		return
	}

	segments := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if len(segments) < 3 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch segments[1] {
	case "latest":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":           "success",
			"base_code":        segments[2],
			"conversion_rates": m.Rates,
		})
	case "pair":
		if len(segments) < 4 {
			http.NotFound(w, r)
			return
		}
		body := map[string]interface{}{
			"result":          "success",
			"base_code":       segments[2],
			"target_code":     segments[3],
			"conversion_rate": m.PairRate,
		}
		if len(segments) == 5 {
			body["conversion_result"] = m.ConversionResult
		}
		json.NewEncoder(w).Encode(body)
	case "history":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":           "success",
			"base_code":        segments[2],
			"conversion_rates": m.Rates,
		})
	default:
		http.NotFound(w, r)
	}
}
