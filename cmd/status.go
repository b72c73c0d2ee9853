package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show checkpoint progress and artifact presence",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPipeline()

		counts, err := p.StageCounts(ctx)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Println("Fetch stages")
		for _, stage := range []string{"species", "abilities", "evo-chains", "form-sprites", "form-data"} {
			n := counts[stage]
			if n == 0 {
				color.Yellow("  %-14s empty", stage)
				continue
			}
			fmt.Printf("  %-14s %d records\n", stage, n)
		}

		bold.Println("Artifacts")
		for _, name := range []string{catalogFile, formsFile, timelineFile, detailFile, eventsFile} {
			path := outputPath(name)
			info, err := os.Stat(path)
			if err != nil {
				color.Yellow("  %-28s missing", name)
				continue
			}
			fmt.Printf("  %-28s %d bytes, %s\n", name, info.Size(), info.ModTime().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
