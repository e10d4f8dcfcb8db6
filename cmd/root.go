package cmd

import (
	"fmt"
	"log"

	"github.com/road-estimator/road-estimator-api/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "road-estimator",
	Short:        "Road Estimator API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		config.SetConfig(cfg)
		return nil
	},
	// Running without a subcommand starts the server.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

// connectDatabase opens the configured database and migrates every table.
func connectDatabase(cfg *config.Config) error {
	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}
	return migrate()
}
