package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/weekplan/internal/cli"
	"github.com/alexanderramin/weekplan/internal/config"
	"github.com/alexanderramin/weekplan/internal/db"
	"github.com/alexanderramin/weekplan/internal/repository"
	"github.com/alexanderramin/weekplan/internal/service"
	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	observer, closeLog, err := openObserver(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	app := &cli.App{
		CopyText: clipboard.WriteAll,
	}

	// Detect interactive terminal for the editor and the import prompt.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	var closeStore func() error
	wire := func(cfg *config.Config) error {
		repo, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		if closeStore != nil {
			_ = closeStore()
		}
		closeStore = closer
		app.Plans = service.NewPlanService(repo, cfg.PlaceholderText, observer)
		app.Import = service.NewImportService(repo, observer)
		return nil
	}
	if err := wire(cfg); err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	app.Reconfigure = func(planDir, backend string) error {
		if err := cfg.Override(planDir, backend); err != nil {
			return err
		}
		return wire(cfg)
	}

	return cli.NewRootCmd(app).Execute()
}

// openStore returns the plan repository selected by cfg and a function that
// releases it.
func openStore(cfg *config.Config) (repository.PlanRepo, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLitePlanRepo(database), database.Close, nil
	default:
		return repository.NewFilePlanRepo(cfg.PlanDir), func() error { return nil }, nil
	}
}

// openObserver returns the use-case observer for cfg: a log file, stderr, or
// nothing.
func openObserver(cfg *config.Config) (service.UseCaseObserver, func(), error) {
	var w io.Writer
	closeLog := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	case cfg.LogEnabled:
		w = os.Stderr
	default:
		return service.NoopUseCaseObserver{}, closeLog, nil
	}
	return service.NewLogUseCaseObserver(w), closeLog, nil
}
