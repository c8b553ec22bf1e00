package cli

import (
	"github.com/alexanderramin/rueda/internal/metrics"
	"github.com/alexanderramin/rueda/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	Schedule service.ScheduleService
	Runs     service.RunService
	Metrics  *metrics.Recorder

	// ConfigPath is the event configuration; the global --config flag sets it.
	ConfigPath string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "rueda" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rueda",
		Short:         "Business matchmaking meeting scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddFlagSet(globalFlags(&app.ConfigPath))

	root.AddCommand(
		newScheduleCmd(app),
		newValidateCmd(app),
		newRunsCmd(app),
		newInitCmd(app),
		newBrowseCmd(app),
	)

	return root
}
