// Package cli wires the synccheck commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hamed0406/synccheck/internal/config"
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

type options struct {
	cfg   config.Config
	debug bool
}

// NewRootCmd creates the root command. Bare `synccheck` behaves like
// `synccheck run`. Flags default to the environment configuration.
func NewRootCmd() *cobra.Command {
	o := &options{cfg: config.FromEnv()}

	cmd := &cobra.Command{
		Use:           "synccheck",
		Short:         "Probe a booking API and its frontend and report what is out of sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.cfg.APIBaseURL, "api", o.cfg.APIBaseURL, "Booking API base URL")
	pf.StringVar(&o.cfg.FrontendBaseURL, "frontend", o.cfg.FrontendBaseURL, "Frontend base URL")
	pf.StringVar(&o.cfg.Username, "username", o.cfg.Username, "Admin username for the token probe")
	pf.StringVar(&o.cfg.Password, "password", o.cfg.Password, "Admin password for the token probe")
	pf.StringVar(&o.cfg.LogDir, "log-dir", o.cfg.LogDir, "Directory for synccheck.log")
	pf.BoolVar(&o.debug, "debug", false, "Log every response at debug level")

	run := newRunCmd(o)
	cmd.Flags().AddFlagSet(run.Flags())
	cmd.RunE = run.RunE

	cmd.AddCommand(run)
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newStubCmd(o))
	cmd.AddCommand(newPreflightCmd(o))
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}
