package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate RUN_ID",
		Short: "Re-check a stored schedule for double bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Runs.Revalidate(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRevalidation(res.Run, res.Report, res.FingerprintMatches))

			switch {
			case res.Report.HasConflicts():
				return fmt.Errorf("run %s has %d conflicts", res.Run.DisplayID(), res.Report.TotalConflicts)
			case !res.FingerprintMatches:
				return fmt.Errorf("run %s: stored schedule does not match its fingerprint", res.Run.DisplayID())
			}
			return nil
		},
	}
}
