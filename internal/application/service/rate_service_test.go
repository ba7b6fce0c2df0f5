package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/openfx/currencyconverter/internal/domain/provider"
	"github.com/openfx/currencyconverter/internal/domain/repository"
	"github.com/openfx/currencyconverter/internal/infrastructure/cache"
	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
	"github.com/openfx/currencyconverter/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRate(t *testing.T) {
	ctx := context.Background()
	pair := entity.CurrencyPair{Base: "USD", Quote: "EUR"}
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)

	t.Run("Spot rate fetched once then cached", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		svc := NewRateService(mockProvider, nil, nil, log)

		query := entity.NewExchangeRateQuery(pair)
		rate := &entity.ExchangeRate{Pair: pair, Value: 0.726804, Provider: "currency_converter"}

		mockProvider.On("GetExchangeRate", ctx, query).Return(rate, nil).Once()

		first, err := svc.GetRate(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, 0.726804, first.Value)

		// Second call is served from the cache.
		second, err := svc.GetRate(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		mockProvider.AssertExpectations(t)
	})

	t.Run("Historical rate served from the store", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		mockStore := new(mocks.MockExchangeRateRepository)
		svc := NewRateService(mockProvider, mockStore, nil, log)

		date := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)
		query := entity.NewHistoricalExchangeRateQuery(pair, date)
		stored := &entity.ExchangeRate{Pair: pair, Value: 0.85, Provider: "currency_converter", Date: date}

		mockStore.On("FindRate", ctx, pair, date).Return(stored, nil).Once()

		rate, err := svc.GetRate(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, stored, rate)

		// The provider was never asked.
		mockProvider.AssertNotCalled(t, "GetExchangeRate")
		mockStore.AssertExpectations(t)
	})

	t.Run("Historical miss falls through to the provider and persists", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		mockStore := new(mocks.MockExchangeRateRepository)
		svc := NewRateService(mockProvider, mockStore, nil, log)

		date := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)
		query := entity.NewHistoricalExchangeRateQuery(pair, date)
		fetched := &entity.ExchangeRate{Pair: pair, Value: 0.85, Provider: "currency_converter", Date: date}

		mockStore.On("FindRate", ctx, pair, date).Return(nil, repository.ErrRateNotFound).Once()
		mockProvider.On("GetExchangeRate", ctx, query).Return(fetched, nil).Once()
		mockStore.On("StoreRate", ctx, fetched).Return(nil).Once()

		rate, err := svc.GetRate(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, fetched, rate)

		mockProvider.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Provider error propagates", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		svc := NewRateService(mockProvider, nil, nil, log)

		query := entity.NewExchangeRateQuery(pair)
		provErr := &provider.ProviderError{Provider: "currency_converter", Message: "API key is invalid"}

		mockProvider.On("GetExchangeRate", ctx, query).Return(nil, provErr).Once()
		mockProvider.On("Name").Return("currency_converter")

		rate, err := svc.GetRate(ctx, query)
		assert.Nil(t, rate)
		require.Error(t, err)

		var got *provider.ProviderError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, provErr.Message, got.Message)

		mockProvider.AssertExpectations(t)
	})

	t.Run("Store failure does not block the lookup", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		mockStore := new(mocks.MockExchangeRateRepository)
		svc := NewRateService(mockProvider, mockStore, nil, log)

		date := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)
		query := entity.NewHistoricalExchangeRateQuery(pair, date)
		fetched := &entity.ExchangeRate{Pair: pair, Value: 0.85, Provider: "currency_converter", Date: date}

		mockStore.On("FindRate", ctx, pair, date).Return(nil, repository.ErrRateNotFound).Once()
		mockProvider.On("GetExchangeRate", ctx, query).Return(fetched, nil).Once()
		mockStore.On("StoreRate", ctx, fetched).Return(errors.New("disk full")).Once()

		rate, err := svc.GetRate(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, fetched, rate)
	})

	t.Run("Expired cache entry triggers a fresh fetch", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		c := cache.NewExchangeRateCache()
		c.SetExpiration(time.Nanosecond)
		svc := NewRateService(mockProvider, nil, c, log)

		query := entity.NewExchangeRateQuery(pair)
		rate := &entity.ExchangeRate{Pair: pair, Value: 0.72, Provider: "currency_converter"}

		mockProvider.On("GetExchangeRate", ctx, query).Return(rate, nil).Twice()

		_, err := svc.GetRate(ctx, query)
		require.NoError(t, err)

		time.Sleep(time.Millisecond)

		_, err = svc.GetRate(ctx, query)
		require.NoError(t, err)

		mockProvider.AssertExpectations(t)
	})
}

func TestConvert(t *testing.T) {
	ctx := context.Background()
	pair := entity.CurrencyPair{Base: "USD", Quote: "EUR"}
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)

	t.Run("Rounds to two decimal places", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		svc := NewRateService(mockProvider, nil, nil, log)

		query := entity.NewExchangeRateQuery(pair)
		rate := &entity.ExchangeRate{Pair: pair, Value: 0.8333, Provider: "currency_converter"}

		mockProvider.On("GetExchangeRate", ctx, query).Return(rate, nil).Once()

		conversion, err := svc.Convert(ctx, 100.0, query)
		require.NoError(t, err)
		assert.Equal(t, 83.33, conversion.ConvertedAmount)
		assert.Equal(t, 100.0, conversion.Amount)
		assert.Equal(t, 0.8333, conversion.Rate)
		assert.Equal(t, pair, conversion.Pair)
		assert.Equal(t, "currency_converter", conversion.Provider)
	})

	t.Run("Rate failure propagates", func(t *testing.T) {
		mockProvider := new(mocks.MockExchangeRateProvider)
		svc := NewRateService(mockProvider, nil, nil, log)

		query := entity.NewExchangeRateQuery(pair)

		mockProvider.On("GetExchangeRate", ctx, query).Return(nil, errors.New("connection refused")).Once()
		mockProvider.On("Name").Return("currency_converter")

		conversion, err := svc.Convert(ctx, 100.0, query)
		assert.Nil(t, conversion)
		assert.Error(t, err)
	})
}
