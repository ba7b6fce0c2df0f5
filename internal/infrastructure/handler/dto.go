package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
)

// RateResponse represents the response for the rate endpoint
type RateResponse struct {
	Base     string  `json:"base"`
	Quote    string  `json:"quote"`
	Rate     float64 `json:"rate"`
	Provider string  `json:"provider"`
	Date     string  `json:"date,omitempty"`
}

// ConversionResponse represents the response for the convert endpoint
type ConversionResponse struct {
	Base            string  `json:"base"`
	Quote           string  `json:"quote"`
	Amount          float64 `json:"amount"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"converted_amount"`
	Provider        string  `json:"provider"`
	Date            string  `json:"date,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

func sendErrorResponse(w http.ResponseWriter, log logger.Logger, errMsg, description string, status int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error:       errMsg,
		Status:      status,
		Description: description,
		RequestID:   requestID,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("Failed to encode error response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}
