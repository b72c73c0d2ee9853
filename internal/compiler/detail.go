package compiler

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/livingdex/dexsync/internal/artifact"
)

// Compile merges the fetched stages into the detail document. It is a pure
// join over the checkpointed state: no network, idempotent, safe to re-run.
// Form records that are pure references carry no data of their own and are
// omitted; the client falls back to the base species record for them.
func Compile(
	species map[int]*SpeciesRecord,
	abilities map[string]string,
	chains map[int][]artifact.ChainStage,
	formData map[int]*FormRecord,
) *artifact.DetailDoc {
	doc := &artifact.DetailDoc{
		Meta: artifact.Meta{
			Types:     TypeData,
			EggGroups: EggGroupZh,
		},
		Species:   make(map[string]*artifact.DetailRecord, len(species)+len(formData)),
		EvoChains: make(map[string][]artifact.ChainStage, len(chains)),
		Abilities: abilities,
	}

	for id, sr := range species {
		rec := &artifact.DetailRecord{
			Types:       sr.Types,
			Stats:       sr.Stats,
			Abilities:   sr.Abilities,
			Height:      ptr(sr.Height),
			Weight:      ptr(sr.Weight),
			Genus:       ptr(sr.Genus),
			Flavor:      ptr(sr.Flavor),
			EggGroups:   sr.EggGroups,
			CaptureRate: ptr(sr.CaptureRate),
			GenderRate:  ptr(sr.GenderRate),
			IsLegendary: ptr(sr.IsLegendary),
			IsMythical:  ptr(sr.IsMythical),
			Generation:  ptr(sr.Generation),
			BaseExp:     ptr(sr.BaseExp),
		}
		if sr.HiddenAbility != "" {
			rec.HiddenAbility = ptr(sr.HiddenAbility)
		}
		if sr.EvoChainID != 0 {
			rec.EvoChainID = ptr(sr.EvoChainID)
		}
		doc.Species[strconv.Itoa(id)] = rec
	}

	skipped := 0
	for id, fr := range formData {
		if fr.Ref != 0 {
			skipped++
			continue
		}
		rec := &artifact.DetailRecord{
			Types:     fr.Types,
			Stats:     fr.Stats,
			Abilities: fr.Abilities,
			Height:    ptr(fr.Height),
			Weight:    ptr(fr.Weight),
			BaseExp:   ptr(fr.BaseExp),
			BaseRef:   ptr(fr.BaseRef),
		}
		if fr.HiddenAbility != "" {
			rec.HiddenAbility = ptr(fr.HiddenAbility)
		}
		doc.Species[strconv.Itoa(id)] = rec
	}

	for id, stages := range chains {
		doc.EvoChains[strconv.Itoa(id)] = stages
	}

	zap.L().Info("compiled detail document",
		zap.Int("species", len(doc.Species)),
		zap.Int("evo_chains", len(doc.EvoChains)),
		zap.Int("abilities", len(doc.Abilities)),
		zap.Int("reference_only_forms", skipped),
	)
	return doc
}

func ptr[T any](v T) *T { return &v }
