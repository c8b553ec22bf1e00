package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse RUN_ID",
		Short: "Step through a stored schedule slot by slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs a terminal; use 'rueda runs show %s' instead", args[0])
			}
			run, err := app.Runs.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newBrowseModel(run), tea.WithAltScreen()).Run()
			return err
		},
	}
}
