// Package repository defines the storage ports of the domain.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
)

// ErrRateNotFound is returned by FindRate when no rate is stored for the
// requested pair and date.
var ErrRateNotFound = errors.New("exchange rate not found")

// ExchangeRateRepository defines the interface for exchange rate storage.
// A zero date addresses the latest known rate for the pair; a non-zero date
// addresses the rate as of that calendar day.
type ExchangeRateRepository interface {
	// FindRate returns the stored rate for a pair and date.
	FindRate(ctx context.Context, pair entity.CurrencyPair, date time.Time) (*entity.ExchangeRate, error)

	// StoreRate saves a rate under its pair and date.
	StoreRate(ctx context.Context, rate *entity.ExchangeRate) error
}
