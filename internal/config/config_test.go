package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fbz.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
api:
  url: https://example.fogbugz.com
  token: secret
  user_agent: custom-agent
  timeout_sec: 10
  rate_per_sec: 1
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.URL != "https://example.fogbugz.com" || cfg.API.Token != "secret" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.API.UserAgent != "custom-agent" || cfg.API.Timeout != 10 {
		t.Errorf("api = %+v", cfg.API)
	}
	// Rate limit without explicit burst defaults to 1.
	if cfg.API.RateBurst != 1 {
		t.Errorf("rate burst = %d", cfg.API.RateBurst)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvExpansionAndFallbacks(t *testing.T) {
	t.Setenv("FBZ_TEST_TOKEN", "expanded-secret")
	path := writeConfig(t, `
api:
  url: ${FBZ_TEST_URL:-https://fallback.fogbugz.com}
  token: ${FBZ_TEST_TOKEN}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.URL != "https://fallback.fogbugz.com" {
		t.Errorf("url = %q", cfg.API.URL)
	}
	if cfg.API.Token != "expanded-secret" {
		t.Errorf("token = %q", cfg.API.Token)
	}
	// Defaults applied.
	if cfg.API.UserAgent != "fbz-cli" || cfg.API.Timeout != 30 || cfg.Logging.Level != "info" {
		t.Errorf("defaults = %+v %+v", cfg.API, cfg.Logging)
	}
}

func TestLoad_NoFileUsesEnvironment(t *testing.T) {
	t.Setenv("FOGBUGZ_URL", "https://env.fogbugz.com")
	t.Setenv("FOGBUGZ_API_KEY", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.URL != "https://env.fogbugz.com" || cfg.API.Token != "env-secret" {
		t.Errorf("api = %+v", cfg.API)
	}
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("FOGBUGZ_URL", "")
	t.Setenv("FOGBUGZ_API_KEY", "")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "api.url") {
		t.Errorf("Load() without url: err = %v", err)
	}

	path := writeConfig(t, `
api:
  url: https://example.fogbugz.com
  token: secret
logging:
  level: loud
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("Load() with bad level: err = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Load() on missing explicit path: err = nil")
	}
}
