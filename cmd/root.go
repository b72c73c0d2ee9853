package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dexsync",
	Short: "Offline species-catalog compilation pipeline",
	Long:  "Fetches species, form-variant, evolution and event-distribution data from their upstream sources and compiles the static catalog artifacts the tracker client loads.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local overrides; absence is fine.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
