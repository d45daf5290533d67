package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/llmctl/pkg/gateway"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ServerURL != gateway.DefaultBaseURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, gateway.DefaultBaseURL)
	}
	if cfg.AccessKeyHeader != gateway.DefaultAccessKeyHeader {
		t.Errorf("AccessKeyHeader = %q, want %q", cfg.AccessKeyHeader, gateway.DefaultAccessKeyHeader)
	}
	d, err := cfg.RequestTimeout()
	if err != nil {
		t.Fatalf("RequestTimeout() error = %v", err)
	}
	if d != gateway.DefaultTimeout {
		t.Errorf("RequestTimeout() = %v, want %v", d, gateway.DefaultTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server_url: https://gw.example/api
access_key_header: X-API-KEY
app_title: Test Console
timeout: 5s
state_db: ` + filepath.Join(dir, "state.db") + `
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerURL != "https://gw.example/api" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.AccessKeyHeader != "X-API-KEY" {
		t.Errorf("AccessKeyHeader = %q", cfg.AccessKeyHeader)
	}
	if cfg.AppTitle != "Test Console" {
		t.Errorf("AppTitle = %q", cfg.AppTitle)
	}
	d, _ := cfg.RequestTimeout()
	if d != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want 5s", d)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v for a missing file", err)
	}
	if cfg.ServerURL != gateway.DefaultBaseURL {
		t.Errorf("ServerURL = %q, want defaults", cfg.ServerURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LLMCTL_SERVER", "https://env.example/api")
	t.Setenv("LLMCTL_TIMEOUT", "7s")
	t.Setenv("LLMCTL_STATE_DB", ":memory:")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerURL != "https://env.example/api" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
	if cfg.StateDB != ":memory:" {
		t.Errorf("StateDB = %q, want :memory:", cfg.StateDB)
	}
	d, _ := cfg.RequestTimeout()
	if d != 7*time.Second {
		t.Errorf("RequestTimeout() = %v, want 7s", d)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("LLMCTL_TIMEOUT", "soon")
	t.Setenv("LLMCTL_STATE_DB", ":memory:")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() error = nil, want invalid timeout failure")
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse failure")
	}
}

func TestGatewayConfig(t *testing.T) {
	cfg := Config{
		ServerURL:       "https://gw.example/api",
		AccessKeyHeader: "X-API-KEY",
		Timeout:         "3s",
	}
	gc := cfg.GatewayConfig()
	if gc.BaseURL != "https://gw.example/api" {
		t.Errorf("BaseURL = %q", gc.BaseURL)
	}
	if gc.AccessKeyHeader != "X-API-KEY" {
		t.Errorf("AccessKeyHeader = %q", gc.AccessKeyHeader)
	}
	if gc.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", gc.Timeout)
	}
}
