package entity

import "time"

// Query identifies an exchange rate lookup against a provider. The two
// implementations are ExchangeRateQuery for the current rate and
// HistoricalExchangeRateQuery for the rate as of a past calendar date;
// providers dispatch between them with a type switch.
type Query interface {
	CurrencyPair() CurrencyPair
}

// ExchangeRateQuery asks for the current rate of a currency pair.
type ExchangeRateQuery struct {
	Pair CurrencyPair
}

// NewExchangeRateQuery creates a query for the current rate of pair.
func NewExchangeRateQuery(pair CurrencyPair) ExchangeRateQuery {
	return ExchangeRateQuery{Pair: pair}
}

func (q ExchangeRateQuery) CurrencyPair() CurrencyPair {
	return q.Pair
}

// HistoricalExchangeRateQuery asks for the rate of a currency pair as of a
// specific calendar date. The date carries no time of day and is normalized
// to midnight UTC.
type HistoricalExchangeRateQuery struct {
	Pair CurrencyPair
	Date time.Time
}

// NewHistoricalExchangeRateQuery creates a query for the rate of pair as of
// date. The date is truncated to its calendar day in UTC.
func NewHistoricalExchangeRateQuery(pair CurrencyPair, date time.Time) HistoricalExchangeRateQuery {
	utc := date.UTC()

	return HistoricalExchangeRateQuery{
		Pair: pair,
		Date: time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC),
	}
}

func (q HistoricalExchangeRateQuery) CurrencyPair() CurrencyPair {
	return q.Pair
}
