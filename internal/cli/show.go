package cli

import (
	"github.com/spf13/cobra"

	"github.com/hamed0406/synccheck/internal/report"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <results-file>",
		Short: "Print the report for a saved results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := report.ReadFile(args[0])
			if err != nil {
				return err
			}
			rep := report.NewReporter(cmd.OutOrStdout())
			rep.Banner("🔍 BOOKING SYNC CHECK", "Results: "+args[0])
			for _, r := range results {
				rep.Result(r)
			}
			sum := report.Summarize(results)
			rep.Report(sum, results)
			if code := sum.ExitCode(); code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}
