package cache

import (
	"sync"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
)

// entry is a cached exchange rate with its insertion time.
type entry struct {
	rate     *entity.ExchangeRate
	cachedAt time.Time
}

// ExchangeRateCache provides a thread-safe in-memory TTL cache for exchange
// rates, keyed by pair and calendar date. Rates for the current day use a
// dedicated "latest" slot so they expire independently of historical ones.
type ExchangeRateCache struct {
	entries    map[string]entry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewExchangeRateCache creates a cache with a one hour default expiration.
func NewExchangeRateCache() *ExchangeRateCache {
	return &ExchangeRateCache{
		entries:    make(map[string]entry),
		expiration: time.Hour,
	}
}

// cacheKey addresses a rate by pair symbol and date; a zero date addresses
// the latest rate.
func cacheKey(pair entity.CurrencyPair, date time.Time) string {
	if date.IsZero() {
		return pair.Symbol() + ":latest"
	}

	return pair.Symbol() + ":" + date.Format("2006-01-02")
}

// Get retrieves a cached rate, or nil when absent or expired.
func (c *ExchangeRateCache) Get(pair entity.CurrencyPair, date time.Time) *entity.ExchangeRate {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, exists := c.entries[cacheKey(pair, date)]
	if !exists || time.Since(e.cachedAt) > c.expiration {
		return nil
	}

	return e.rate
}

// Put stores a rate under its own pair and date.
func (c *ExchangeRateCache) Put(rate *entity.ExchangeRate) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[cacheKey(rate.Pair, rate.Date)] = entry{
		rate:     rate,
		cachedAt: time.Now(),
	}
}

// SetExpiration sets the cache expiration duration.
func (c *ExchangeRateCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}

// Size returns the number of cached rates, expired ones included.
func (c *ExchangeRateCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Clear drops all cached rates.
func (c *ExchangeRateCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]entry)
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *ExchangeRateCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := time.Now()

	for key, e := range c.entries {
		if now.Sub(e.cachedAt) > c.expiration {
			delete(c.entries, key)
			count++
		}
	}

	return count
}
