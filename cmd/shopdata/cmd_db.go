package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdata/pkg/database"
	"github.com/shashiranjanraj/shopdata/pkg/migration"
	"github.com/shashiranjanraj/shopdata/pkg/output"
)

// withDB opens the --db file, or DB_PATH, for the duration of fn.
func withDB(cmd *cobra.Command, fn func(db *gorm.DB, path string) error) error {
	path := flags.resolve(cmd).dbPath
	db, err := database.Open(path)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db, path)
}

// shopdata migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB, path string) error {
			output.Info(cmd.OutOrStdout(), "Running migrations on %s", path)
			return migration.New(db).Run(cmd.Context())
		})
	},
}

// shopdata migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB, path string) error {
			output.Info(cmd.OutOrStdout(), "Rolling back last batch on %s", path)
			return migration.New(db).Rollback(cmd.Context())
		})
	},
}

// shopdata migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB, _ string) error {
			if err := migration.New(db).Status(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("migrate:status: %w", err)
			}
			return nil
		})
	},
}

func init() {
	addDBFlag(migrateCmd)
	addDBFlag(migrateRollbackCmd)
	addDBFlag(migrateStatusCmd)
}
