// Package mocks holds shared testify mocks for the domain ports.
package mocks

import (
	"context"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockExchangeRateProvider mocks the ExchangeRateProvider interface
type MockExchangeRateProvider struct {
	mock.Mock
}

func (m *MockExchangeRateProvider) GetExchangeRate(ctx context.Context, query entity.Query) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExchangeRateProvider) Supports(query entity.Query) bool {
	args := m.Called(query)
	return args.Bool(0)
}

// MockExchangeRateRepository mocks the ExchangeRateRepository interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, pair entity.CurrencyPair, date time.Time) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, pair, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) StoreRate(ctx context.Context, rate *entity.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}
