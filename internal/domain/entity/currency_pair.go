package entity

import (
	"fmt"
	"strings"
)

// CurrencyPair represents an ordered base/quote currency pair identifying a
// conversion direction, e.g. USD/EUR means "how many EUR for one USD".
type CurrencyPair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// ParseCurrencyPair builds a pair from its "BASE/QUOTE" string form.
func ParseCurrencyPair(s string) (CurrencyPair, error) {
	base, quote, ok := strings.Cut(s, "/")
	if !ok {
		return CurrencyPair{}, fmt.Errorf("invalid currency pair %q: expected BASE/QUOTE", s)
	}

	if !isCurrencyCode(base) || !isCurrencyCode(quote) {
		return CurrencyPair{}, fmt.Errorf("invalid currency pair %q: codes must be 3 upper-case letters", s)
	}

	return CurrencyPair{Base: base, Quote: quote}, nil
}

// isCurrencyCode reports whether code looks like an ISO 4217 alphabetic code.
func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}

	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	return true
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Quote
}

// Symbol returns the composite key form used by rate providers, e.g. "USD_EUR".
func (p CurrencyPair) Symbol() string {
	return p.Base + "_" + p.Quote
}
