package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kadgis/fieldstore/internal/config"
	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/services"
	"github.com/spf13/cobra"
)

// app holds the store for a single command run. The database is opened on
// first use and closed when the command returns.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.Database
	resolver *services.Resolver
}

func (a *app) open(ctx context.Context) (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := database.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.cfg.Database.Path, err)
	}
	a.db = db
	a.resolver = services.NewResolver(controller.NewProvider(db, a.log), nil, a.cfg.Dashboard.LandUses, a.log)
	return db, nil
}

func (a *app) services(ctx context.Context) (*services.Set, error) {
	if _, err := a.open(ctx); err != nil {
		return nil, err
	}
	return a.resolver.Services(ctx)
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
		a.resolver = nil
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "kadgisctl",
		Short:         "Inspect and maintain the KADGIS field record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			a.cfg = cfg
			a.log = logger.NewWithWriter(os.Stderr, "production", cfg.Server.LogLevel)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file to operate on (overrides DB_PATH)")

	subcommands := []*cobra.Command{
		schemaCommand(a),
		statsCommand(a),
		wipeCommand(a),
		versionCommand(a),
	}
	for _, sub := range subcommands {
		runE := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.close()
			return runE(cmd, args)
		}
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}
