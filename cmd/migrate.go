package cmd

import (
	"fmt"
	"log"

	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return connectDatabase(config.GetConfig())
	},
}

func migrate() error {
	if err := models.AutoMigrate(config.GetDB()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}
