package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/csg33k/payroll-roster/internal/adapters/flatfile"
	"github.com/csg33k/payroll-roster/internal/adapters/html"
	"github.com/csg33k/payroll-roster/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/payroll-roster/internal/adapters/sqlite"
	"github.com/csg33k/payroll-roster/internal/adapters/xlsx"
	"github.com/csg33k/payroll-roster/internal/config"
	"github.com/csg33k/payroll-roster/internal/currency"
	"github.com/csg33k/payroll-roster/internal/logging"
	"github.com/csg33k/payroll-roster/internal/ports"
	"github.com/csg33k/payroll-roster/internal/roster"
	"github.com/csg33k/payroll-roster/internal/shell"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "payroll:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a payroll.yaml config file")
	dataFile := flag.String("file", "", "roster location (overrides data_file)")
	initConfig := flag.String("init-config", "", "write a default config file to this path and exit")
	flag.Parse()

	if *initConfig != "" {
		if err := config.WriteDefault(*initConfig); err != nil {
			return err
		}
		fmt.Println("wrote", *initConfig)
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error loading .env file", "err", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	logger = logger.With("session", uuid.NewString())
	slog.SetDefault(logger)

	money, err := currency.New(cfg.Currency.Symbol, cfg.Currency.Locale)
	if err != nil {
		return err
	}

	repo, err := newRepository(cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("starting", "data_file", cfg.DataFile, "driver", cfg.Storage.Driver, "format", cfg.Storage.Format)

	ctx := context.Background()
	store := roster.New(repo, logger)
	if err := store.Load(ctx, cfg.DataFile); err != nil {
		// Start with an empty roster. The shell asks before saving over the unread file.
		fmt.Fprintf(os.Stderr, "Error loading employee data: %v\n", err)
	}

	sh := shell.New(shell.Options{
		In:        os.Stdin,
		Out:       os.Stdout,
		Store:     store,
		Formatter: money,
		Exporters: []ports.ReportExporter{
			pdf.New(money),
			xlsx.New(),
			html.New(money),
		},
		DataFile:   cfg.DataFile,
		ReportsDir: cfg.ReportsDir,
		Logger:     logger,
	})
	return sh.Run(ctx)
}

func newRepository(cfg config.StorageConfig) (ports.RosterRepository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqliteadapter.New(), nil
	case config.DriverText:
		codec, err := flatfile.New(cfg.Format)
		if err != nil {
			return nil, err
		}
		return flatfile.NewRepository(codec), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
