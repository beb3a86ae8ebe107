// Command importer manages the donor database: it applies the schema and
// bulk loads donors from CSV.
package main

import (
	"errors"
	"os"

	"donor-finder-api/internal/config"
	"donor-finder-api/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "importer",
	Short:         "Manage the donor database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger.Setup(cfg.LogLevel, cfg.Environment)

		if cfg.DBSource == "" {
			return errors.New("DB_SOURCE is required")
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs", "directory containing app.env")
	rootCmd.AddCommand(newMigrateCmd(), newDonorsCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("importer failed")
		os.Exit(1)
	}
}
