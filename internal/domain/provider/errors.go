package provider

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a provider response body that matches neither the
// provider's error shape nor its success shape. Decode failures wrap it so
// callers can tell them apart from failures the provider itself reported.
var ErrInvalidResponse = errors.New("invalid provider response")

// ConfigurationError reports invalid provider configuration. It is returned
// at construction time, never from a rate lookup.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ProviderError reports a failure signaled by the provider: an error payload
// in the response body, or a non-success HTTP status. The provider's own
// message is carried opaquely.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}
