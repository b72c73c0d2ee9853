package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/reconcile"
)

var (
	formsListing     string
	formsDiagnostics bool
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Fetch form-variant sprites and rebuild the timeline",
	Long: `Resolves a sprite for every known form variant (resuming from the
form-sprite checkpoint), writes forms.json, and reconciles the external
depositable listing into main-timeline.json when a listing is present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPipeline()

		forms, err := p.FetchForms(ctx)
		if err != nil {
			return err
		}
		if err := artifact.WriteJSON(outputPath(formsFile), forms); err != nil {
			return err
		}
		zap.L().Info("forms written", zap.Int("count", len(forms)))

		var catalog []artifact.SpeciesEntry
		if err := artifact.ReadJSON(outputPath(catalogFile), &catalog); err != nil {
			zap.L().Warn("no species catalog, skipping timeline", zap.Error(err))
			return nil
		}

		entries, err := reconcile.LoadExternalEntries(formsListing)
		if err != nil {
			zap.L().Warn("no external listing, skipping timeline", zap.Error(err))
			return nil
		}

		corrections, err := reconcile.LoadCorrections(cfg.Output.CorrectionsFile)
		if err != nil {
			return err
		}

		r := reconcile.NewResolver(catalog, forms, corrections, cfg.API.ExtSpriteBase)
		timeline := r.Resolve(entries)
		if err := artifact.WriteJSON(outputPath(timelineFile), timeline); err != nil {
			return err
		}
		zap.L().Info("timeline written",
			zap.Int("entries", len(timeline)),
			zap.Int("unresolved", len(reconcile.Unresolved(timeline))),
		)

		if formsDiagnostics {
			reconcile.PrintDiagnostics(os.Stdout, timeline)
		}
		return nil
	},
}

func init() {
	formsCmd.Flags().StringVar(&formsListing, "listing", "data/external-listing.json", "external depositable listing (JSON)")
	formsCmd.Flags().BoolVar(&formsDiagnostics, "diagnostics", false, "print unresolved timeline entries")
	rootCmd.AddCommand(formsCmd)
}
