package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

type Config struct {
	APIBaseURL      string        // booking API, e.g. "http://localhost:8000"
	FrontendBaseURL string        // frontend dev server, e.g. "http://localhost:5174"
	Username        string        // admin login for the token probe
	Password        string
	APITimeout      time.Duration // per-request timeout for API probes
	PageTimeout     time.Duration // per-request timeout for frontend pages
	OutputDir       string        // where the results file goes
	WriteResults    bool          // write the timestamped results file
	SuiteFile       string        // optional YAML overrides
	LogDir          string        // logs directory
	SlackWebhook    string        // empty disables notification

	// stub servers
	StubAPIAddr      string
	StubFrontendAddr string
}

func FromEnv() Config {
	return Config{
		APIBaseURL:       trimBase(getEnv("SYNC_API_BASE", "http://localhost:8000")),
		FrontendBaseURL:  trimBase(getEnv("SYNC_FRONTEND_BASE", "http://localhost:5174")),
		Username:         os.Getenv("SYNC_USERNAME"),
		Password:         os.Getenv("SYNC_PASSWORD"),
		APITimeout:       getEnvMillis("SYNC_API_TIMEOUT_MS", 10*time.Second),
		PageTimeout:      getEnvMillis("SYNC_PAGE_TIMEOUT_MS", 5*time.Second),
		OutputDir:        getEnv("SYNC_OUTPUT_DIR", "."),
		WriteResults:     getEnvBool("SYNC_WRITE_RESULTS", true),
		SuiteFile:        os.Getenv("SYNC_SUITE_FILE"),
		LogDir:           getEnv("LOG_DIR", "logs"),
		SlackWebhook:     os.Getenv("SLACK_WEBHOOK_URL"),
		StubAPIAddr:      getEnv("STUB_API_ADDR", "127.0.0.1:8000"),
		StubFrontendAddr: getEnv("STUB_FRONTEND_ADDR", "127.0.0.1:5174"),
	}
}

// Normalize trims whitespace and trailing slashes from the base URLs, so
// flag values behave like environment values.
func (c Config) Normalize() Config {
	c.APIBaseURL = trimBase(c.APIBaseURL)
	c.FrontendBaseURL = trimBase(c.FrontendBaseURL)
	return c
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	err = multierr.Append(err, checkBaseURL("api base url", c.APIBaseURL))
	err = multierr.Append(err, checkBaseURL("frontend base url", c.FrontendBaseURL))
	err = multierr.Append(err, checkTimeout("api timeout", c.APITimeout))
	err = multierr.Append(err, checkTimeout("page timeout", c.PageTimeout))
	if c.WriteResults && strings.TrimSpace(c.OutputDir) == "" {
		err = multierr.Append(err, fmt.Errorf("output dir is empty"))
	}
	return err
}

func checkBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s %q: want an absolute http(s) URL", name, raw)
	}
	return nil
}

func checkTimeout(name string, d time.Duration) error {
	if d < time.Second || d > time.Minute {
		return fmt.Errorf("%s %s: want between 1s and 60s", name, d)
	}
	return nil
}

func trimBase(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvMillis(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
