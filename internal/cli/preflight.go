package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/hamed0406/synccheck/internal/config"
	"github.com/hamed0406/synccheck/internal/suite"
)

func newPreflightCmd(o *options) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check configuration and reachability before a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !preflight(cmd.Context(), o.cfg.Normalize(), !offline, cmd.OutOrStdout()) {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the reachability checks")
	return cmd
}

// preflight prints one line per check and reports whether none failed.
// Unreachable targets only warn: the run itself reports them.
func preflight(ctx context.Context, cfg config.Config, reach bool, w io.Writer) bool {
	passed := true
	fail := func(msg string) {
		fmt.Fprintln(w, "✖", msg)
		passed = false
	}
	warn := func(msg string) { fmt.Fprintln(w, "⚠", msg) }
	ok := func(msg string) { fmt.Fprintln(w, "✔", msg) }

	if err := cfg.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fail(e.Error())
		}
	} else {
		ok("API=" + cfg.APIBaseURL)
		ok("FRONTEND=" + cfg.FrontendBaseURL)
	}

	if cfg.Username == "" || cfg.Password == "" {
		warn("SYNC_USERNAME/SYNC_PASSWORD empty; authenticated probes will be skipped.")
	} else {
		ok("credentials present for " + cfg.Username)
	}

	if cfg.SuiteFile != "" {
		f, err := suite.LoadFile(cfg.SuiteFile)
		if err == nil {
			_, err = f.Apply(cfg, suite.Build(cfg, time.Now()))
		}
		if err != nil {
			fail(err.Error())
		} else {
			ok("suite file " + cfg.SuiteFile)
		}
	}

	if cfg.WriteResults {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fail("output dir: " + err.Error())
		} else {
			ok("OUTPUT_DIR=" + cfg.OutputDir)
		}
	}

	if cfg.SlackWebhook == "" {
		warn("SLACK_WEBHOOK_URL empty; no notification will be sent.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	if reach && passed {
		for _, target := range []string{cfg.APIBaseURL, cfg.FrontendBaseURL} {
			if err := reachable(ctx, target); err != nil {
				warn(target + " unreachable: " + err.Error())
			} else {
				ok(target + " reachable")
			}
		}
	}

	if passed {
		ok("preflight passed")
	}
	return passed
}

// reachable succeeds on any HTTP response; only transport errors count.
func reachable(ctx context.Context, target string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
