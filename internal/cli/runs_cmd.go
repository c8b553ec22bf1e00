package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/spf13/cobra"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored scheduling runs",
	}

	cmd.AddCommand(
		newRunsListCmd(app),
		newRunsShowCmd(app),
	)

	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Runs.List(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")

	return cmd
}

func newRunsShowCmd(app *App) *cobra.Command {
	var (
		participant string
		role        string
	)

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show a stored run",
		Long: `Show a stored run. RUN_ID may be any unique prefix of the run ID.

With --participant only that participant's agenda is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := app.Runs.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if participant != "" {
				r, err := domain.ParseRole(role)
				if err != nil {
					return fmt.Errorf("--role: %w", err)
				}
				fmt.Fprint(w, formatter.FormatAgenda(participant, r, run.Slots, run.Schedule))
				return nil
			}

			fmt.Fprint(w, formatter.FormatRunHeader(run))
			fmt.Fprintln(w)
			fmt.Fprint(w, formatter.FormatSchedule(run.Slots, run.Schedule))
			fmt.Fprintln(w)
			fmt.Fprint(w, formatter.FormatShortfalls(run.Shortfalls))
			return nil
		},
	}

	cmd.Flags().StringVar(&participant, "participant", "", "Print the agenda of one participant")
	cmd.Flags().StringVar(&role, "role", "requester", "Role of --participant (requester or provider)")

	return cmd
}
