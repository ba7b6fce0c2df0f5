package entity

import (
	"time"
)

// ExchangeRate represents a rate fetched from a provider for a currency pair.
// Date is set only for rates answering a historical query, echoing the
// requested calendar date; it is zero for current rates.
type ExchangeRate struct {
	Pair     CurrencyPair `json:"pair"`
	Value    float64      `json:"value"`
	Provider string       `json:"provider"`
	Date     time.Time    `json:"date,omitempty"`
}
