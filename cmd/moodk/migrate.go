package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moodk/moodk/internal/database"
)

var downFlag bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(true)
		if err != nil {
			return err
		}
		defer log.Close()

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if downFlag {
			err = db.MigrateDown(cmd.Context())
		} else {
			err = db.Migrate(cmd.Context())
		}
		if err != nil {
			return err
		}

		version, err := db.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&downFlag, "down", false, "Roll back the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}
