// Package config loads the console's deployment configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/llmctl/pkg/gateway"
)

// Config holds the deployment-time settings, read once at startup.
type Config struct {
	ServerURL       string `yaml:"server_url"`        // Gateway API base URL
	AccessKeyHeader string `yaml:"access_key_header"` // Header name for the session access key
	AppTitle        string `yaml:"app_title"`         // Display title for page headers
	Timeout         string `yaml:"timeout"`           // Request timeout, Go duration string
	StateDB         string `yaml:"state_db"`          // Local state database path (":memory:" for tests)
	LogLevel        string `yaml:"log_level"`         // debug, info, warn, error
	LogFormat       string `yaml:"log_format"`        // text, json
}

// Default returns the built-in defaults. StateDB stays empty here; it is
// resolved to ~/.llmctl/state.db at load time.
func Default() Config {
	return Config{
		ServerURL:       gateway.DefaultBaseURL,
		AccessKeyHeader: gateway.DefaultAccessKeyHeader,
		AppTitle:        "LLM Proxy Console",
		Timeout:         gateway.DefaultTimeout.String(),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load builds the effective config: defaults, overlaid by the YAML file at
// path (or ~/.llmctl/config.yaml when path is empty; a missing file is not
// an error), overlaid by LLMCTL_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".llmctl", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.StateDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("find home directory: %w", err)
		}
		cfg.StateDB = filepath.Join(home, ".llmctl", "state.db")
	}

	if _, err := cfg.RequestTimeout(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.ServerURL, "LLMCTL_SERVER")
	set(&cfg.AccessKeyHeader, "LLMCTL_ACCESS_KEY_HEADER")
	set(&cfg.AppTitle, "LLMCTL_TITLE")
	set(&cfg.Timeout, "LLMCTL_TIMEOUT")
	set(&cfg.StateDB, "LLMCTL_STATE_DB")
	set(&cfg.LogLevel, "LLMCTL_LOG_LEVEL")
	set(&cfg.LogFormat, "LLMCTL_LOG_FORMAT")
}

// RequestTimeout parses the configured timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return gateway.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// GatewayConfig converts the deployment config into the client config.
func (c Config) GatewayConfig() gateway.Config {
	timeout, err := c.RequestTimeout()
	if err != nil {
		timeout = gateway.DefaultTimeout
	}
	return gateway.DefaultConfig().
		WithBaseURL(c.ServerURL).
		WithAccessKeyHeader(c.AccessKeyHeader).
		WithTimeout(timeout)
}
