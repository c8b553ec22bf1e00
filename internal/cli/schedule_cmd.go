package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/alexanderramin/rueda/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var (
		inputs      inputFlags
		seed        int64
		dryRun      bool
		asJSON      bool
		strict      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build the meeting schedule for an event",
		Long: `Build the meeting schedule for an event.

Every requester is first placed within the coverage window, then the
remaining preferences are satisfied in order. The run is stored unless
--dry-run is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.RunRequest{
				ConfigPath:      app.ConfigPath,
				PreferencesPath: inputs.prefs,
				RosterPath:      inputs.roster,
				DryRun:          dryRun,
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			out, err := app.Schedule.Run(context.Background(), req)
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if app.Metrics == nil {
					return fmt.Errorf("--metrics-file: metrics are not enabled")
				}
				if err := app.Metrics.WriteTextfile(metricsFile); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(newRunExport(out)); err != nil {
					return fmt.Errorf("encoding json: %w", err)
				}
			} else {
				printRunResult(w, out)
			}

			if strict && out.Conflicts.HasConflicts() {
				return fmt.Errorf("schedule has %d conflicts", out.Conflicts.TotalConflicts)
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(inputs.flagSet())
	cmd.Flags().Int64Var(&seed, "seed", 0, "Tie-break seed; overrides scheduler.seed")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Schedule without storing the run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the schedule has conflicts")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format")

	return cmd
}

func printRunResult(w io.Writer, out *service.RunResult) {
	fmt.Fprint(w, formatter.FormatRunHeader(out.Run))
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.FormatSchedule(out.Run.Slots, out.Run.Schedule))
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatter.FormatStats(out.Result.Stats))
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.FormatPreferenceAudit(out.Preferences))
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.FormatShortfalls(out.Run.Shortfalls))
	if len(out.Violations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, formatter.FormatViolations(out.Violations))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, formatter.FormatConflicts(out.Conflicts))

	if len(out.InputWarnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatter.StyleYellow.Render(fmt.Sprintf("%d preference rows skipped:", len(out.InputWarnings))))
		for _, e := range out.InputWarnings {
			fmt.Fprintln(w, formatter.Dim("  "+e.Error()))
		}
	}

	fmt.Fprintln(w)
	if out.Persisted {
		fmt.Fprintf(w, "Stored run %s. Browse it with 'rueda browse %s'.\n",
			formatter.StyleBlue.Render(out.Run.DisplayID()), out.Run.DisplayID())
	} else {
		fmt.Fprintln(w, formatter.Dim("Dry run: nothing stored."))
	}
	fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("finished in %s", out.Duration.Round(time.Microsecond))))
}
