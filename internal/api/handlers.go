package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"currency-exchange-cli/internal/exchange"
	"currency-exchange-cli/internal/middleware"
	"currency-exchange-cli/internal/models"
)

// Exchanger is the client surface exposed over HTTP.
type Exchanger interface {
	LatestRates(ctx context.Context, currency string) (map[string]float64, error)
	PairRate(ctx context.Context, from, to string) (float64, error)
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
	HistoricalRates(ctx context.Context, currency string, year, month, day int) (map[string]float64, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	client    Exchanger
	logger    *logrus.Logger
	startTime time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(client Exchanger, logger *logrus.Logger) *Handlers {
	return &Handlers{
		client:    client,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(handlers.corsMiddleware())

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/rates/latest/:currency", handlers.GetLatestRates)
		apiV1.GET("/rates/pair/:from/:to", handlers.GetPairRate)
		apiV1.GET("/rates/pair/:from/:to/:amount", handlers.ConvertAmount)
		apiV1.GET("/rates/history/:currency/:date", handlers.GetHistoricalRates)
	}

	return router
}

// HealthCheck handles health check requests
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	healthCheckResponse := models.HealthCheck{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(handlers.startTime).String(),
	}

	context.JSON(http.StatusOK, healthCheckResponse)
}

// GetLatestRates returns the current rates for a base currency
func (handlers *Handlers) GetLatestRates(context *gin.Context) {
	baseCurrency := strings.ToUpper(context.Param("currency"))
	requestContext := context.Request.Context()

	rates, fetchError := handlers.client.LatestRates(requestContext, baseCurrency)
	if fetchError != nil {
		handlers.writeUpstreamError(context, fetchError)
		return
	}

	context.JSON(http.StatusOK, models.LatestRatesResponse{
		Result:          "success",
		BaseCode:        baseCurrency,
		ConversionRates: rates,
	})
}

// GetPairRate returns the conversion rate for a currency pair
func (handlers *Handlers) GetPairRate(context *gin.Context) {
	from := strings.ToUpper(context.Param("from"))
	to := strings.ToUpper(context.Param("to"))
	requestContext := context.Request.Context()

	rate, fetchError := handlers.client.PairRate(requestContext, from, to)
	if fetchError != nil {
		handlers.writeUpstreamError(context, fetchError)
		return
	}

	context.JSON(http.StatusOK, gin.H{
		"result":          "success",
		"base_code":       from,
		"target_code":     to,
		"conversion_rate": rate,
	})
}

// ConvertAmount converts an amount between two currencies
func (handlers *Handlers) ConvertAmount(context *gin.Context) {
	from := strings.ToUpper(context.Param("from"))
	to := strings.ToUpper(context.Param("to"))

	amount, parseError := strconv.ParseFloat(context.Param("amount"), 64)
	if parseError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "Invalid amount", "Amount must be a number")
		return
	}

	requestContext := context.Request.Context()

	result, fetchError := handlers.client.Convert(requestContext, from, to, amount)
	if fetchError != nil {
		handlers.writeUpstreamError(context, fetchError)
		return
	}

	context.JSON(http.StatusOK, gin.H{
		"result":            "success",
		"base_code":         from,
		"target_code":       to,
		"amount":            amount,
		"conversion_result": result,
	})
}

// GetHistoricalRates returns the rates for a base currency on a past date
func (handlers *Handlers) GetHistoricalRates(context *gin.Context) {
	baseCurrency := strings.ToUpper(context.Param("currency"))

	date, parseError := time.Parse("2006-01-02", context.Param("date"))
	if parseError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "Invalid date", "Date must be in YYYY-MM-DD form")
		return
	}
	year, month, day := date.Date()

	requestContext := context.Request.Context()

	rates, fetchError := handlers.client.HistoricalRates(requestContext, baseCurrency, year, int(month), day)
	if fetchError != nil {
		handlers.writeUpstreamError(context, fetchError)
		return
	}

	context.JSON(http.StatusOK, models.HistoryResponse{
		Result:          "success",
		BaseCode:        baseCurrency,
		Year:            year,
		Month:           int(month),
		Day:             day,
		ConversionRates: rates,
	})
}

// writeUpstreamError maps client failures to a 502 response, keeping the
// client's error text as the message
func (handlers *Handlers) writeUpstreamError(context *gin.Context, err error) {
	var statusError *exchange.StatusError
	if errors.As(err, &statusError) {
		handlers.logger.Warnf("Exchange rate API rejected request: %v", err)
		handlers.writeErrorResponse(context, http.StatusBadGateway, "Exchange rate API rejected the request", statusError.Error())
		return
	}

	handlers.logger.Errorf("Failed to reach exchange rate API: %v", err)
	handlers.writeErrorResponse(context, http.StatusBadGateway, "Failed to reach exchange rate API", err.Error())
}

// writeErrorResponse writes an error response using Gin context
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage, errorDetails string) {
	errorResponse := models.ErrorResponse{
		Error:   errorMessage,
		Message: errorDetails,
		Code:    statusCode,
	}

	context.JSON(statusCode, errorResponse)
}

// corsMiddleware adds CORS headers using Gin middleware
func (handlers *Handlers) corsMiddleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Header("Access-Control-Allow-Origin", "*")
		context.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		context.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if context.Request.Method == "OPTIONS" {
			context.AbortWithStatus(http.StatusOK)
			return
		}

		context.Next()
	}
}
