package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/handlers"
	"github.com/spf13/cobra"
)

func schemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create or upgrade the record tables and print their columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.services(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, schema := range controller.Schemas {
				present, err := database.TableColumns(cmd.Context(), a.db.DB, schema.Name)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s (%d columns)\n", schema.Name, len(present))
				for _, name := range schema.ColumnNames() {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}

func statsCommand(a *app) *cobra.Command {
	var landUses []string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := set.Dashboard.Summary(cmd.Context(), landUses)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringSliceVar(&landUses, "land-use", nil, "land use to tally (repeatable; defaults to DASHBOARD_LAND_USES)")
	return cmd
}

func wipeCommand(a *app) *cobra.Command {
	var (
		kind string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every record of one kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			var removed int64
			switch strings.ToLower(kind) {
			case "property":
				removed, err = set.Properties.DeleteAll(cmd.Context(), yes)
			case "facility":
				removed, err = set.Facilities.DeleteAll(cmd.Context(), yes)
			default:
				return fmt.Errorf("unknown record kind %q (want property or facility)", kind)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d %s records\n", removed, strings.ToLower(kind))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "record kind: property or facility")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func versionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the API and embedded SQLite versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			sqliteVersion, err := db.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kadgisctl %s (sqlite %s)\n", handlers.APIVersion, sqliteVersion)
			return nil
		},
	}
}
