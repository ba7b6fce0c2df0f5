package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/openfx/currencyconverter/internal/domain/repository"
)

// BadgerExchangeRateRepository implements the exchange rate repository
// interface using BadgerDB. Rates are stored as JSON under a key derived
// from pair and date, so historical lookups never depend on the provider
// once stored.
type BadgerExchangeRateRepository struct {
	db *badger.DB
}

var _ repository.ExchangeRateRepository = (*BadgerExchangeRateRepository)(nil)

// NewBadgerExchangeRateRepository creates a new BadgerDB exchange rate repository.
func NewBadgerExchangeRateRepository(db *badger.DB) *BadgerExchangeRateRepository {
	return &BadgerExchangeRateRepository{db: db}
}

func rateKey(pair entity.CurrencyPair, date time.Time) []byte {
	if date.IsZero() {
		return []byte("rate:" + pair.Symbol() + ":latest")
	}

	return []byte("rate:" + pair.Symbol() + ":" + date.Format("2006-01-02"))
}

// StoreRate saves a rate under its pair and date.
func (r *BadgerExchangeRateRepository) StoreRate(ctx context.Context, rate *entity.ExchangeRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange rate: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rateKey(rate.Pair, rate.Date), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store exchange rate: %w", err)
	}

	return nil
}

// FindRate retrieves a stored rate for a pair and date. A zero date addresses
// the latest stored rate.
func (r *BadgerExchangeRateRepository) FindRate(ctx context.Context, pair entity.CurrencyPair, date time.Time) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rateKey(pair, date))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rate)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", repository.ErrRateNotFound, pair.Symbol())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exchange rate: %w", err)
	}

	return &rate, nil
}
