// Package gateway provides a Go client for the LLM proxy gateway REST API.
package gateway

import "time"

// Default client settings.
const (
	DefaultBaseURL         = "http://localhost:8080/api"
	DefaultAccessKeyHeader = "ACCESS-KEY"
	DefaultTimeout         = 20 * time.Second
)

// Config holds all configuration for the gateway API client.
type Config struct {
	// BaseURL is the root of the gateway API.
	BaseURL string

	// AccessKeyHeader is the header name carrying the session access key.
	// The gateway deployment decides the name; the default matches the
	// reference deployment.
	AccessKeyHeader string

	// Timeout is the HTTP client timeout for each request. Requests fail
	// after this interval rather than hanging.
	Timeout time.Duration
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		AccessKeyHeader: DefaultAccessKeyHeader,
		Timeout:         DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = url
	return c
}

// WithAccessKeyHeader returns a copy of the config with the specified
// access-key header name.
func (c Config) WithAccessKeyHeader(name string) Config {
	c.AccessKeyHeader = name
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}
