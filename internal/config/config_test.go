package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("SYNC_API_BASE", "http://api.test:9000/")
	t.Setenv("SYNC_FRONTEND_BASE", "http://web.test:5173")
	t.Setenv("SYNC_USERNAME", "ady")
	t.Setenv("SYNC_PASSWORD", "secret")
	t.Setenv("SYNC_API_TIMEOUT_MS", "7000")
	t.Setenv("SYNC_PAGE_TIMEOUT_MS", "bogus")
	t.Setenv("SYNC_WRITE_RESULTS", "false")
	t.Setenv("LOG_DIR", "./_testlogs")

	cfg := FromEnv()

	if cfg.APIBaseURL != "http://api.test:9000" {
		t.Fatalf("trailing slash should be trimmed: %q", cfg.APIBaseURL)
	}
	if cfg.FrontendBaseURL != "http://web.test:5173" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("frontend/logdir wrong: %+v", cfg)
	}
	if cfg.Username != "ady" || cfg.Password != "secret" {
		t.Fatalf("credentials wrong: %+v", cfg)
	}
	if cfg.APITimeout != 7*time.Second || cfg.PageTimeout != 5*time.Second {
		t.Fatalf("timeouts wrong: api=%s page=%s", cfg.APITimeout, cfg.PageTimeout)
	}
	if cfg.WriteResults {
		t.Fatalf("expected WriteResults=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	// ensure defaults don’t crash if missing env
	os.Unsetenv("SYNC_API_BASE")
	if got := FromEnv().APIBaseURL; got != "http://localhost:8000" {
		t.Fatalf("default api base wrong: %q", got)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Config{
		APIBaseURL:      "localhost:8000",
		FrontendBaseURL: "ftp://x",
		APITimeout:      0,
		PageTimeout:     5 * time.Second,
		WriteResults:    true,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Fatalf("want 4 problems, got %d: %v", n, err)
	}
	if !strings.Contains(err.Error(), "frontend base url") {
		t.Fatalf("missing frontend problem: %v", err)
	}
}

func TestNormalize_TrimsFlagValues(t *testing.T) {
	c := Config{APIBaseURL: " http://api.local:8000/ ", FrontendBaseURL: "http://fe.local//"}.Normalize()
	if c.APIBaseURL != "http://api.local:8000" || c.FrontendBaseURL != "http://fe.local" {
		t.Fatalf("unexpected normalized urls: %q %q", c.APIBaseURL, c.FrontendBaseURL)
	}
}
