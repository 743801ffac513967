package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/synccheck/internal/logging"
	"github.com/hamed0406/synccheck/internal/stubapi"
)

// Credentials the stub accepts when none are configured.
const (
	stubUsername = "admin"
	stubPassword = "admin"
)

func newStubCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve an in-memory booking API and frontend for dry runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(o.cfg.LogDir, o.debug)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer logger.Sync()

			user, pass := o.cfg.Username, o.cfg.Password
			if user == "" {
				user, pass = stubUsername, stubPassword
			}
			logger.Info("stub_start", zap.String("username", user))
			fmt.Fprintf(cmd.OutOrStdout(), "API:      http://%s/api/booking\nFrontend: http://%s/\nLogin:    %s\n",
				o.cfg.StubAPIAddr, o.cfg.StubFrontendAddr, user)

			return stubapi.Serve(cmd.Context(), logger, o.cfg.StubAPIAddr, o.cfg.StubFrontendAddr,
				stubapi.Account{Username: user, Password: pass, Role: stubapi.RoleSuperadmin})
		},
	}
	cmd.Flags().StringVar(&o.cfg.StubAPIAddr, "api-addr", o.cfg.StubAPIAddr, "Listen address for the stub API")
	cmd.Flags().StringVar(&o.cfg.StubFrontendAddr, "frontend-addr", o.cfg.StubFrontendAddr, "Listen address for the stub frontend")
	return cmd
}
