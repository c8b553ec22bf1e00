package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/rueda/internal/cli"
	"github.com/alexanderramin/rueda/internal/config"
	"github.com/alexanderramin/rueda/internal/db"
	"github.com/alexanderramin/rueda/internal/logging"
	"github.com/alexanderramin/rueda/internal/metrics"
	"github.com/alexanderramin/rueda/internal/repository"
	"github.com/alexanderramin/rueda/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The config decides the database and log settings, so it is read
	// before the command tree parses the rest of the arguments.
	configPath := cli.ConfigPathFromArgs(os.Args[1:])
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	runRepo := repository.NewSQLiteRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	rec := metrics.New()

	app := &cli.App{
		Schedule:   service.NewScheduleService(uow, rec, *logging.Component(logger, "scheduler"), observer),
		Runs:       service.NewRunService(runRepo, observer),
		Metrics:    rec,
		ConfigPath: configPath,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug().Str("db", dbPath).Str("config", configPath).Msg("starting")

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
