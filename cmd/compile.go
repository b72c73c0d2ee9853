package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/compiler"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the detail document from checkpointed data",
	Long: `Rebuilds pokemon-details.json from whatever the fetch stages have
checkpointed so far, without touching the network. Useful after editing
corrections or when iterating on the compile step itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPipeline()

		species, err := p.LoadSpeciesCheckpoint(ctx)
		if err != nil {
			return err
		}
		abilities, err := p.LoadAbilityCheckpoint(ctx)
		if err != nil {
			return err
		}
		chains, err := p.LoadChainCheckpoint(ctx)
		if err != nil {
			return err
		}
		formData, err := p.LoadFormDataCheckpoint(ctx)
		if err != nil {
			return err
		}

		doc := compiler.Compile(species, abilities, chains, formData)
		if err := artifact.WriteJSON(outputPath(detailFile), doc); err != nil {
			return err
		}

		zap.L().Info("detail document written",
			zap.Int("species", len(doc.Species)),
			zap.Int("evo_chains", len(doc.EvoChains)),
			zap.Int("abilities", len(doc.Abilities)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
