package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/compiler"
	"github.com/livingdex/dexsync/internal/reconcile"
)

var (
	syncListing string
	syncResume  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the full fetch and compile pipeline",
	Long: `Runs every fetch stage (species, abilities, evolution chains, form
variants, external form data) and compiles all catalog artifacts. Each stage
resumes from its checkpoint, so an interrupted run picks up where it left
off and a completed run is a no-op apart from the compile step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runID := uuid.NewString()
		log := zap.L().With(zap.String("run_id", runID))

		if !syncResume {
			log.Warn("discarding checkpoints for a fresh run", zap.String("dir", cfg.Checkpoint.Dir))
			if err := os.RemoveAll(cfg.Checkpoint.Dir); err != nil {
				return err
			}
		}

		log.Info("starting full sync")
		start := time.Now()

		p := newPipeline()

		species, err := p.FetchSpecies(ctx)
		if err != nil {
			return err
		}

		catalog := p.BuildCatalog(species)
		if err := artifact.WriteJSON(outputPath(catalogFile), catalog); err != nil {
			return err
		}

		abilities, err := p.FetchAbilities(ctx, compiler.AbilityNames(species))
		if err != nil {
			return err
		}

		chains, err := p.FetchEvoChains(ctx, species)
		if err != nil {
			return err
		}

		forms, err := p.FetchForms(ctx)
		if err != nil {
			return err
		}
		if err := artifact.WriteJSON(outputPath(formsFile), forms); err != nil {
			return err
		}

		timeline, err := buildTimeline(catalog, forms)
		if err != nil {
			return err
		}
		if timeline != nil {
			if err := artifact.WriteJSON(outputPath(timelineFile), timeline); err != nil {
				return err
			}
		}

		formData, err := p.FetchFormData(ctx, compiler.FormTargets(cfg.API.MaxSpecies, forms, timeline))
		if err != nil {
			return err
		}

		doc := compiler.Compile(species, abilities, chains, formData)
		if err := artifact.WriteJSON(outputPath(detailFile), doc); err != nil {
			return err
		}

		log.Info("sync complete",
			zap.Int("species", len(species)),
			zap.Int("forms", len(forms)),
			zap.Int("timeline", len(timeline)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	},
}

// buildTimeline reconciles the external depositable listing when one is
// available; a missing listing just skips the timeline artifact.
func buildTimeline(catalog []artifact.SpeciesEntry, forms []artifact.FormEntry) ([]artifact.TimelineEntry, error) {
	entries, err := reconcile.LoadExternalEntries(syncListing)
	if err != nil {
		zap.L().Warn("no external listing, skipping timeline", zap.Error(err))
		return nil, nil
	}

	corrections, err := reconcile.LoadCorrections(cfg.Output.CorrectionsFile)
	if err != nil {
		return nil, err
	}

	r := reconcile.NewResolver(catalog, forms, corrections, cfg.API.ExtSpriteBase)
	return r.Resolve(entries), nil
}

func init() {
	syncCmd.Flags().StringVar(&syncListing, "listing", "data/external-listing.json", "external depositable listing (JSON)")
	syncCmd.Flags().BoolVar(&syncResume, "resume", true, "resume from existing checkpoints")
	rootCmd.AddCommand(syncCmd)
}
