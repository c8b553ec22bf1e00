package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/alexanderramin/rueda/internal/config"
	"github.com/alexanderramin/rueda/internal/importer"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "rueda.yaml"

func newInitCmd(app *App) *cobra.Command {
	var (
		useDefaults bool
		samplePrefs string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Create an event configuration",
		Long: `Create an event configuration, rueda.yaml by default.

In a terminal a short wizard asks for the event details; with --defaults
or without a terminal the default configuration is written as is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			w := cmd.OutOrStdout()

			if samplePrefs != "" {
				if err := writeSamplePrefs(samplePrefs); err != nil {
					return err
				}
				cfg.Inputs.Preferences = relativeTo(filepath.Dir(path), samplePrefs)
				fmt.Fprintf(w, "Wrote sample preferences to %s\n", samplePrefs)
			}

			if !useDefaults && app.interactive() {
				values := wizardDefaults(cfg)
				if err := newInitForm(values).Run(); err != nil {
					return fmt.Errorf("init wizard: %w", err)
				}
				if err := values.apply(cfg); err != nil {
					return err
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}

			fmt.Fprintf(w, "%s Wrote %s\n", formatter.StyleGreen.Render("✔"), path)
			fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Next: rueda schedule --config %s", path)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the default configuration without prompting")
	cmd.Flags().StringVar(&samplePrefs, "sample-prefs", "", "Also write an example preference CSV to this file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	return cmd
}

func writeSamplePrefs(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	var buf bytes.Buffer
	if err := importer.WriteSample(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// relativeTo expresses target relative to dir when possible, since the
// config loader resolves input paths against the config directory.
func relativeTo(dir, target string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return target
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		return absTarget
	}
	return rel
}
