package compiler

import (
	"context"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/checkpoint"
)

// The Load* helpers read a stage's checkpoint without fetching, for
// compile-only and status invocations. Undecodable records are skipped,
// matching what the fetch stages do on resume.

// LoadSpeciesCheckpoint reads the base-species stage.
func (p *Pipeline) LoadSpeciesCheckpoint(ctx context.Context) (map[int]*SpeciesRecord, error) {
	out := make(map[int]*SpeciesRecord)
	err := p.loadStage(ctx, "species", checkpoint.KindSpecies, func(k checkpoint.Key, rec checkpoint.Record) {
		var sr SpeciesRecord
		if checkpoint.Unmarshal(rec, &sr) == nil {
			out[k.NumericID()] = &sr
		}
	})
	return out, err
}

// LoadAbilityCheckpoint reads the ability-translation stage.
func (p *Pipeline) LoadAbilityCheckpoint(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := p.loadStage(ctx, "abilities", checkpoint.KindAbility, func(k checkpoint.Key, rec checkpoint.Record) {
		var zh string
		if checkpoint.Unmarshal(rec, &zh) == nil {
			out[k.ID] = zh
		}
	})
	return out, err
}

// LoadChainCheckpoint reads the evolution-chain stage.
func (p *Pipeline) LoadChainCheckpoint(ctx context.Context) (map[int][]artifact.ChainStage, error) {
	out := make(map[int][]artifact.ChainStage)
	err := p.loadStage(ctx, "evo-chains", checkpoint.KindChain, func(k checkpoint.Key, rec checkpoint.Record) {
		var stages []artifact.ChainStage
		if checkpoint.Unmarshal(rec, &stages) == nil {
			out[k.NumericID()] = stages
		}
	})
	return out, err
}

// LoadFormDataCheckpoint reads the external form-variant stage.
func (p *Pipeline) LoadFormDataCheckpoint(ctx context.Context) (map[int]*FormRecord, error) {
	out := make(map[int]*FormRecord)
	err := p.loadStage(ctx, "form-data", checkpoint.KindSpecies, func(k checkpoint.Key, rec checkpoint.Record) {
		var fr FormRecord
		if checkpoint.Unmarshal(rec, &fr) == nil {
			out[k.NumericID()] = &fr
		}
	})
	return out, err
}

func (p *Pipeline) loadStage(ctx context.Context, stage string, bare checkpoint.Kind, visit func(checkpoint.Key, checkpoint.Record)) error {
	store, err := checkpoint.Open(p.cfg.Checkpoint, stage, bare)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	records, err := store.Load(ctx)
	if err != nil {
		return err
	}
	for k, rec := range records {
		visit(k, rec)
	}
	return nil
}

// StageCounts reports how many records each fetch stage has checkpointed.
func (p *Pipeline) StageCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, s := range []struct {
		stage string
		bare  checkpoint.Kind
	}{
		{"species", checkpoint.KindSpecies},
		{"abilities", checkpoint.KindAbility},
		{"evo-chains", checkpoint.KindChain},
		{"form-sprites", checkpoint.KindForm},
		{"form-data", checkpoint.KindSpecies},
	} {
		n := 0
		if err := p.loadStage(ctx, s.stage, s.bare, func(checkpoint.Key, checkpoint.Record) { n++ }); err != nil {
			return nil, err
		}
		counts[s.stage] = n
	}
	return counts, nil
}
