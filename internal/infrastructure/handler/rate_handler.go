// Package handler exposes the rate service over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/openfx/currencyconverter/internal/application/service"
	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/openfx/currencyconverter/internal/domain/provider"
	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
	"github.com/openfx/currencyconverter/internal/infrastructure/middleware"
)

// RateHandler handles HTTP requests for exchange rates and conversions
type RateHandler struct {
	service *service.RateService
	logger  logger.Logger
}

// NewRateHandler creates a new rate handler
func NewRateHandler(svc *service.RateService, log logger.Logger) *RateHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateHandler{
		service: svc,
		logger:  log,
	}
}

// GetRate handles GET /api/v1/rates/{base}/{quote}. An optional date query
// parameter (YYYY-MM-DD) turns the lookup historical.
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	query, ok := h.buildQuery(w, vars["base"], vars["quote"], r.URL.Query().Get("date"), requestID)
	if !ok {
		return
	}

	rate, err := h.service.GetRate(r.Context(), query)
	if err != nil {
		h.sendServiceError(w, err, requestID)
		return
	}

	resp := RateResponse{
		Base:     rate.Pair.Base,
		Quote:    rate.Pair.Quote,
		Rate:     rate.Value,
		Provider: rate.Provider,
	}
	if !rate.Date.IsZero() {
		resp.Date = rate.Date.Format("2006-01-02")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Convert handles GET /api/v1/convert?from=&to=&amount=[&date=].
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	params := r.URL.Query()

	amount, err := strconv.ParseFloat(params.Get("amount"), 64)
	if err != nil || amount <= 0 {
		h.logger.Warn("Invalid amount", map[string]interface{}{
			"request_id": requestID,
			"amount":     params.Get("amount"),
		})
		sendErrorResponse(w, h.logger, "Invalid amount",
			"The 'amount' query parameter must be a positive number", http.StatusBadRequest, requestID)
		return
	}

	query, ok := h.buildQuery(w, params.Get("from"), params.Get("to"), params.Get("date"), requestID)
	if !ok {
		return
	}

	conversion, err := h.service.Convert(r.Context(), amount, query)
	if err != nil {
		h.sendServiceError(w, err, requestID)
		return
	}

	resp := ConversionResponse{
		Base:            conversion.Pair.Base,
		Quote:           conversion.Pair.Quote,
		Amount:          conversion.Amount,
		Rate:            conversion.Rate,
		ConvertedAmount: conversion.ConvertedAmount,
		Provider:        conversion.Provider,
	}
	if !conversion.Date.IsZero() {
		resp.Date = conversion.Date.Format("2006-01-02")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// buildQuery validates the pair and optional date, writing a 400 response and
// returning ok=false on invalid input.
func (h *RateHandler) buildQuery(w http.ResponseWriter, base, quote, dateParam, requestID string) (entity.Query, bool) {
	pair, err := entity.ParseCurrencyPair(strings.ToUpper(base) + "/" + strings.ToUpper(quote))
	if err != nil {
		h.logger.Warn("Invalid currency pair", map[string]interface{}{
			"request_id": requestID,
			"base":       base,
			"quote":      quote,
		})
		sendErrorResponse(w, h.logger, "Invalid currency pair",
			"Currency codes must be 3 letters (e.g., USD, EUR)", http.StatusBadRequest, requestID)
		return nil, false
	}

	if dateParam == "" {
		return entity.NewExchangeRateQuery(pair), true
	}

	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.logger.Warn("Invalid date format", map[string]interface{}{
			"request_id": requestID,
			"date":       dateParam,
		})
		sendErrorResponse(w, h.logger, "Invalid date format",
			"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return nil, false
	}

	if date.After(time.Now()) {
		sendErrorResponse(w, h.logger, "Future date not allowed",
			"Historical rates require a past date", http.StatusBadRequest, requestID)
		return nil, false
	}

	return entity.NewHistoricalExchangeRateQuery(pair, date), true
}

func (h *RateHandler) sendServiceError(w http.ResponseWriter, err error, requestID string) {
	var provErr *provider.ProviderError

	switch {
	case errors.As(err, &provErr):
		h.logger.Error("Provider reported failure", map[string]interface{}{
			"request_id": requestID,
			"provider":   provErr.Provider,
			"error":      provErr.Message,
		})
		sendErrorResponse(w, h.logger, "Exchange rate provider error",
			"The exchange rate provider rejected the request", http.StatusBadGateway, requestID)
	case errors.Is(err, provider.ErrInvalidResponse):
		h.logger.Error("Provider returned malformed response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Exchange rate provider error",
			"The exchange rate provider returned an unreadable response", http.StatusBadGateway, requestID)
	default:
		h.logger.Error("Exchange rate lookup failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Service temporarily unavailable",
			"Unable to retrieve exchange rate data. Please try again later.",
			http.StatusServiceUnavailable, requestID)
	}
}

// RegisterRoutes registers the rate handler routes
func (h *RateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/rates/{base}/{quote}", h.GetRate).Methods("GET")
	router.HandleFunc("/api/v1/convert", h.Convert).Methods("GET")

	h.logger.Info("Rate routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/v1/rates/{base}/{quote}",
			"GET /api/v1/convert",
		},
	})
}
