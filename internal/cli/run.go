package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/synccheck/internal/config"
	"github.com/hamed0406/synccheck/internal/logging"
	"github.com/hamed0406/synccheck/internal/notify"
	"github.com/hamed0406/synccheck/internal/probe"
	"github.com/hamed0406/synccheck/internal/report"
	"github.com/hamed0406/synccheck/internal/suite"
)

func newRunCmd(o *options) *cobra.Command {
	var noResults bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the probe suite and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.cfg.Normalize()
			if noResults {
				cfg.WriteResults = false
			}
			code, err := runChecks(cmd.Context(), cfg, o.debug, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.cfg.OutputDir, "out-dir", o.cfg.OutputDir, "Directory for the results file")
	f.BoolVar(&noResults, "no-results", false, "Do not write the results file")
	f.StringVar(&o.cfg.SuiteFile, "suite", o.cfg.SuiteFile, "YAML file with probe overrides and extra probes")
	return cmd
}

// runChecks runs the suite once and returns the exit code. Errors are
// setup problems only; probe failures are reported through the code.
func runChecks(ctx context.Context, cfg config.Config, debug bool, stdout, stderr io.Writer) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 1, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, debug)
	if err != nil {
		return 1, fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync()

	started := time.Now()
	probes := suite.Build(cfg, started)
	if cfg.SuiteFile != "" {
		f, err := suite.LoadFile(cfg.SuiteFile)
		if err != nil {
			return 1, err
		}
		if probes, err = f.Apply(cfg, probes); err != nil {
			return 1, fmt.Errorf("suite file %s: %w", cfg.SuiteFile, err)
		}
	}

	rep := report.NewReporter(stdout)
	rep.Banner("🔍 BOOKING SYNC CHECK",
		"API: "+cfg.APIBaseURL,
		"Frontend: "+cfg.FrontendBaseURL,
		fmt.Sprintf("Probes: %d", len(probes)),
	)
	if cfg.Username == "" {
		logger.Warn("no_credentials", zap.String("hint", "set SYNC_USERNAME and SYNC_PASSWORD"))
	}
	logger.Info("run_start",
		zap.String("api", cfg.APIBaseURL),
		zap.String("frontend", cfg.FrontendBaseURL),
		zap.Int("probes", len(probes)),
	)

	h := probe.NewHarness(logger)
	h.OnResult = rep.Result
	results := h.RunSuite(ctx, probes, probe.NewSession())

	sum := report.Summarize(results)
	rep.Report(sum, results)

	if cfg.WriteResults {
		path, err := report.WriteFile(cfg.OutputDir, results, started)
		if err != nil {
			logger.Error("results_write_failed", zap.Error(err))
			fmt.Fprintln(stderr, "Error:", err)
		} else {
			logger.Info("results_written", zap.String("path", path))
			rep.Saved(path)
		}
	}

	if n := notify.NewSlack(cfg.SlackWebhook); n != nil {
		title, text := notify.RunMessage(cfg.APIBaseURL, sum, results)
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		if err := (notify.Multi{n}).Send(nctx, title, text); err != nil {
			logger.Warn("notify_failed", zap.Error(err))
		}
		cancel()
	}

	logger.Info("run_done",
		zap.Int("total", sum.Total),
		zap.Int("passed", sum.Passed),
		zap.Int("errors", sum.Errors),
		zap.Int("warnings", sum.Warnings),
		zap.Float64("success_rate", sum.Rate),
		zap.Duration("took", time.Since(started)),
	)
	return sum.ExitCode(), nil
}
