// Package service holds the application services built on the domain ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/openfx/currencyconverter/internal/domain/provider"
	"github.com/openfx/currencyconverter/internal/domain/repository"
	"github.com/openfx/currencyconverter/internal/infrastructure/cache"
	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
	"github.com/openfx/currencyconverter/internal/infrastructure/middleware"
)

// Conversion represents an amount converted through a fetched exchange rate.
type Conversion struct {
	Pair            entity.CurrencyPair `json:"pair"`
	Provider        string              `json:"provider"`
	Amount          float64             `json:"amount"`
	Rate            float64             `json:"rate"`
	ConvertedAmount float64             `json:"converted_amount"`
	Date            time.Time           `json:"date,omitempty"`
}

// RateService serves exchange rate lookups, layering a TTL cache and a
// persistent store in front of the provider. The provider itself stays
// oblivious to both: it is asked at most once per miss. Historical rates are
// persisted since they never change; spot rates only live in the cache.
type RateService struct {
	provider provider.ExchangeRateProvider
	store    repository.ExchangeRateRepository
	cache    *cache.ExchangeRateCache
	logger   logger.Logger
}

// NewRateService creates a rate service. The store may be nil, in which case
// historical rates are fetched from the provider on every cache miss.
func NewRateService(p provider.ExchangeRateProvider, store repository.ExchangeRateRepository, c *cache.ExchangeRateCache, log logger.Logger) *RateService {
	if c == nil {
		c = cache.NewExchangeRateCache()
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateService{
		provider: p,
		store:    store,
		cache:    c,
		logger:   log,
	}
}

// GetRate resolves a query through cache, store, and finally the provider.
func (s *RateService) GetRate(ctx context.Context, query entity.Query) (*entity.ExchangeRate, error) {
	requestID := middleware.GetRequestID(ctx)
	pair := query.CurrencyPair()

	var date time.Time
	if historical, ok := query.(entity.HistoricalExchangeRateQuery); ok {
		date = historical.Date
	}

	if rate := s.cache.Get(pair, date); rate != nil {
		return rate, nil
	}

	if !date.IsZero() && s.store != nil {
		rate, err := s.store.FindRate(ctx, pair, date)
		if err == nil {
			s.cache.Put(rate)
			return rate, nil
		}

		if !errors.Is(err, repository.ErrRateNotFound) {
			s.logger.Warn("Rate store lookup failed", map[string]interface{}{
				"request_id": requestID,
				"pair":       pair.String(),
				"date":       date.Format("2006-01-02"),
				"error":      err.Error(),
			})
		}
	}

	rate, err := s.provider.GetExchangeRate(ctx, query)
	if err != nil {
		s.logger.Error("Failed to get exchange rate", map[string]interface{}{
			"request_id": requestID,
			"provider":   s.provider.Name(),
			"pair":       pair.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	s.logger.Info("Fetched exchange rate", map[string]interface{}{
		"request_id": requestID,
		"provider":   rate.Provider,
		"pair":       pair.String(),
		"value":      rate.Value,
	})

	s.cache.Put(rate)

	if !date.IsZero() && s.store != nil {
		if err := s.store.StoreRate(ctx, rate); err != nil {
			// Persisting is best effort; the rate is already in hand.
			s.logger.Warn("Failed to persist exchange rate", map[string]interface{}{
				"request_id": requestID,
				"pair":       pair.String(),
				"error":      err.Error(),
			})
		}
	}

	return rate, nil
}

// Convert resolves the query's rate and applies it to amount, rounding the
// result to two decimal places.
func (s *RateService) Convert(ctx context.Context, amount float64, query entity.Query) (*Conversion, error) {
	rate, err := s.GetRate(ctx, query)
	if err != nil {
		return nil, err
	}

	converted := math.Round(amount*rate.Value*100) / 100

	return &Conversion{
		Pair:            rate.Pair,
		Provider:        rate.Provider,
		Amount:          amount,
		Rate:            rate.Value,
		ConvertedAmount: converted,
		Date:            rate.Date,
	}, nil
}
