package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openfx/currencyconverter/internal/domain/entity"
	"github.com/openfx/currencyconverter/internal/domain/provider"
	"github.com/openfx/currencyconverter/internal/infrastructure/logger"
)

const (
	providerName = "currency_converter"

	freeHost       = "free.currencyconverterapi.com"
	enterpriseHost = "api.currencyconverterapi.com"
	convertPath    = "/api/v6/convert"
)

// HTTPDoer is the transport capability the client depends on. The standard
// *http.Client satisfies it; tests inject a fake.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures the currencyconverterapi.com client.
type Options struct {
	// AccessKey is the API authentication token, sent as the access_key
	// query parameter when non-empty.
	AccessKey string

	// Enterprise selects the paid api.currencyconverterapi.com host instead
	// of the free one. Enterprise mode requires an access key.
	Enterprise bool
}

// CurrencyConverterClient fetches exchange rates from currencyconverterapi.com.
// It performs exactly one HTTP round trip per lookup: no retries, no caching,
// and no timeout of its own beyond what the injected transport enforces.
// The client is stateless after construction and safe for concurrent use
// provided the transport is.
type CurrencyConverterClient struct {
	transport HTTPDoer
	opts      Options
	baseURL   string
	logger    logger.Logger
}

var _ provider.ExchangeRateProvider = (*CurrencyConverterClient)(nil)

// NewCurrencyConverterClient creates a client for currencyconverterapi.com.
// A nil transport falls back to a default HTTP client with a 10 second
// timeout. Enterprise mode without an access key is rejected here, not at
// query time.
func NewCurrencyConverterClient(transport HTTPDoer, opts Options, log logger.Logger) (*CurrencyConverterClient, error) {
	if opts.Enterprise && opts.AccessKey == "" {
		return nil, &provider.ConfigurationError{Message: "The access_key option must be provided."}
	}

	if transport == nil {
		transport = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	host := freeHost
	if opts.Enterprise {
		host = enterpriseHost
	}

	return &CurrencyConverterClient{
		transport: transport,
		opts:      opts,
		baseURL:   "https://" + host,
		logger:    log,
	}, nil
}

// GetExchangeRate resolves a spot or historical query into an exchange rate.
// The returned rate carries the pair from the query and, for historical
// queries, the requested calendar date echoed back verbatim.
func (c *CurrencyConverterClient) GetExchangeRate(ctx context.Context, query entity.Query) (*entity.ExchangeRate, error) {
	pair := query.CurrencyPair()

	params := url.Values{}
	params.Set("q", pair.Symbol())

	var rateDate time.Time
	if historical, ok := query.(entity.HistoricalExchangeRateQuery); ok {
		rateDate = historical.Date
		params.Set("date", historical.Date.Format("2006-01-02"))
	}

	if c.opts.AccessKey != "" {
		params.Set("access_key", c.opts.AccessKey)
	}

	reqURL := c.baseURL + convertPath + "?" + params.Encode()

	c.logger.Debug("Requesting exchange rate", map[string]interface{}{
		"provider": providerName,
		"pair":     pair.String(),
		"url":      reqURL,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	// Transport failures are not ours to translate; they surface as-is.
	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// The provider reports failures in the body even under HTTP 200, so the
	// error shape is checked before the status code.
	if provErr := parseProviderError(body); provErr != nil {
		return nil, provErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Message:  fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	value, err := parseRate(body, pair)
	if err != nil {
		return nil, err
	}

	return &entity.ExchangeRate{
		Pair:     pair,
		Value:    value,
		Provider: providerName,
		Date:     rateDate,
	}, nil
}

// Name returns the provider identifier "currency_converter".
func (c *CurrencyConverterClient) Name() string {
	return providerName
}

// Supports reports whether the client can serve the given query kind. Only
// the plain and historical exchange rate queries are supported.
func (c *CurrencyConverterClient) Supports(query entity.Query) bool {
	switch query.(type) {
	case entity.ExchangeRateQuery, entity.HistoricalExchangeRateQuery:
		return true
	default:
		return false
	}
}

// errorResponse is the provider's failure shape. The error payload is a
// string on some plans and an object on others, so it stays raw until read.
type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// rateEntry is the per-pair payload of a successful conversion response.
// Additional fields the provider sends alongside val are ignored.
type rateEntry struct {
	Val float64 `json:"val"`
}

func parseProviderError(body []byte) *provider.ProviderError {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		// Not error-shaped; let the success parser report what it is.
		return nil
	}

	if len(errResp.Error) == 0 || string(errResp.Error) == "null" {
		return nil
	}

	var message string
	if err := json.Unmarshal(errResp.Error, &message); err != nil {
		message = string(errResp.Error)
	}

	return &provider.ProviderError{Provider: providerName, Message: message}
}

func parseRate(body []byte, pair entity.CurrencyPair) (float64, error) {
	var results map[string]rateEntry
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, fmt.Errorf("%w: %v", provider.ErrInvalidResponse, err)
	}

	entry, ok := results[pair.Symbol()]
	if !ok {
		return 0, fmt.Errorf("%w: no rate for %s", provider.ErrInvalidResponse, pair.Symbol())
	}

	return entry.Val, nil
}
