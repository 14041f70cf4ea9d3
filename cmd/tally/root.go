package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/config"
	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/log"
)

type globalOptions struct {
	dbPath   string
	logLevel string
	logJSON  bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "tally - daily service statistics for facilities",
		Long:          "tally records daily per-category counts for the sections of a facility and reports them by day or by month.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database path (default: $TALLY_DB_PATH or <data dir>/tally.db)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $TALLY_LOG_LEVEL or info)")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(newFacilityCmd(opts))
	cmd.AddCommand(newSectionCmd(opts))
	cmd.AddCommand(newCategoryCmd(opts))
	cmd.AddCommand(newDetailCmd(opts))
	cmd.AddCommand(newReadCmd(opts))
	cmd.AddCommand(newWriteCmd(opts))
	cmd.AddCommand(newReportCmd(opts, false))
	cmd.AddCommand(newReportCmd(opts, true))
	cmd.AddCommand(newBackupCmd(opts))
	cmd.AddCommand(newPurgeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))

	return cmd
}

func (o *globalOptions) init(cmd *cobra.Command) error {
	cfg := config.Load()
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = log.New(log.Config{
		Level:     level,
		Component: log.ComponentCLI,
		Output:    cmd.ErrOrStderr(),
		JSON:      o.logJSON,
	})
	log.SetDefault(o.logger)
	return nil
}

// open returns a handle to the configured store. Callers must close it.
func (o *globalOptions) open() (*database.Context, error) {
	if o.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	dbCtx, err := database.CreateDatabase(o.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("database opened", log.FieldPath, o.cfg.DBPath, slog.String("data_dir", o.cfg.DataDir))
	return dbCtx, nil
}
