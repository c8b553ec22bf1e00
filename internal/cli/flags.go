package cli

import (
	"github.com/spf13/pflag"
)

const configFlag = "config"

// globalFlags declares the flags main reads before the command tree exists.
// The current value of configPath becomes the default.
func globalFlags(configPath *string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVarP(configPath, configFlag, "c", *configPath, "Event configuration file (.yaml, .yml or .json)")
	return fs
}

// ConfigPathFromArgs extracts --config from raw process arguments, ignoring
// every other flag, so the configuration can be loaded before commands run.
func ConfigPathFromArgs(args []string) string {
	var path string
	fs := globalFlags(&path)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetInterspersed(true)
	_ = fs.Parse(args)
	return path
}

// inputFlags are the run inputs shared by commands that schedule.
type inputFlags struct {
	prefs  string
	roster string
}

func (f *inputFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("inputs", pflag.ContinueOnError)
	fs.StringVarP(&f.prefs, "prefs", "p", "", "Preference CSV (provider,requester); overrides inputs.prefs")
	fs.StringVar(&f.roster, "roster", "", "Roster CSV (role,id); overrides inputs.roster")
	return fs
}
