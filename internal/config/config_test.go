package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// unset clears an env var for the test; envconfig applies defaults only when
// the variable is absent, not when it is set to the empty string.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEBULA_API_KEY", "key_test.secret")
	unset(t, "NEBULA_BASE_URL")
	unset(t, "NEBULA_TIMEOUT")
	unset(t, "NEBULA_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://api.nebulacloud.app" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEBULA_BASE_URL", "http://localhost:8080")
	t.Setenv("NEBULA_TIMEOUT", "5s")
	t.Setenv("NEBULA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://localhost:8080" || cfg.Timeout != 5*time.Second || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"ERROR":   zerolog.ErrorLevel,
		"unknown": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
