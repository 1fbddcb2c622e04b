package cmd

import (
	"minishop/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		db, err := database.Open(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
