package main

import (
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/livingdex/dexsync/internal/compiler"
	"github.com/livingdex/dexsync/internal/fetcher"
)

// Artifact filenames under the configured output directory.
const (
	catalogFile  = "pokemon.json"
	formsFile    = "forms.json"
	timelineFile = "main-timeline.json"
	detailFile   = "pokemon-details.json"
	eventsFile   = "event-distributions.json"
)

func outputPath(name string) string {
	return filepath.Join(cfg.Output.Dir, name)
}

// newPipeline wires the rate-limited API fetcher into a compiler pipeline.
func newPipeline() *compiler.Pipeline {
	api := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.API.UserAgent,
		Timeout:    time.Duration(cfg.API.TimeoutSecs) * time.Second,
		MaxRetries: cfg.API.MaxRetries,
		RetryDelay: time.Duration(cfg.API.RetryDelayMS) * time.Millisecond,
		Rate:       rate.Limit(cfg.API.RatePerSecond),
		Burst:      cfg.API.BatchSize,
	})
	return compiler.New(cfg, api)
}
