package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/artifact"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Rebuild pokemon.json from the species checkpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPipeline()

		species, err := p.LoadSpeciesCheckpoint(ctx)
		if err != nil {
			return err
		}

		catalog := p.BuildCatalog(species)
		if err := artifact.WriteJSON(outputPath(catalogFile), catalog); err != nil {
			return err
		}

		zap.L().Info("catalog written", zap.Int("species", len(catalog)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
