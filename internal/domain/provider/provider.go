// Package provider defines the port for external exchange rate providers and
// the error taxonomy they surface.
package provider

import (
	"context"

	"github.com/openfx/currencyconverter/internal/domain/entity"
)

// ExchangeRateProvider fetches exchange rates from an external source.
type ExchangeRateProvider interface {
	// GetExchangeRate resolves a query into a fully populated rate, or an
	// error; it never returns a partial rate.
	GetExchangeRate(ctx context.Context, query entity.Query) (*entity.ExchangeRate, error)

	// Name returns the provider's stable identifier.
	Name() string

	// Supports reports whether the provider can serve the given query kind.
	Supports(query entity.Query) bool
}
