package cmd

import (
	"log"

	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/services"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a sample estimator and report for an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}

		if err := connectDatabase(config.GetConfig()); err != nil {
			return err
		}

		estimator, report, err := services.SeedSampleData(cmd.Context(), config.GetDB(), email)
		if err != nil {
			return err
		}

		log.Printf("Sample estimator created: %s", estimator.ID)
		log.Printf("Sample report created: %s", report.ID)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("email", "", "email of the user to own the sample data (defaults to the oldest user)")
}
