package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// clearShowcaseEnv unsets every SHOWCASE_ variable for the duration of the
// test so struct defaults apply; t.Setenv registers the restore.
func clearShowcaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SHOWCASE_BASE_URL", "SHOWCASE_TIMEOUT", "SHOWCASE_MAX_RETRIES",
		"SHOWCASE_RETRY_DELAY", "SHOWCASE_STATE_FILE", "SHOWCASE_LOG_LEVEL",
	} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearShowcaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000/projects" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 1 || cfg.RetryDelay != time.Second {
		t.Errorf("retry defaults = %d, %v", cfg.MaxRetries, cfg.RetryDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.StateFile == "" {
		t.Error("StateFile default not derived")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOWCASE_BASE_URL", "https://gallery.example.com/projects")
	t.Setenv("SHOWCASE_TIMEOUT", "3s")
	t.Setenv("SHOWCASE_MAX_RETRIES", "4")
	t.Setenv("SHOWCASE_RETRY_DELAY", "250ms")
	t.Setenv("SHOWCASE_STATE_FILE", "/tmp/showcase-state.json")
	t.Setenv("SHOWCASE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://gallery.example.com/projects" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 4 || cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("retry overrides = %d, %v", cfg.MaxRetries, cfg.RetryDelay)
	}
	if cfg.StateFile != "/tmp/showcase-state.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestSetLogLevelFromString(t *testing.T) {
	defer SetLogLevel(zerolog.InfoLevel)

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		SetLogLevelFromString(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Errorf("%q: level = %v, want %v", tc.in, got, tc.want)
		}
	}
}
