package compiler

import (
	"sort"
	"strconv"

	"github.com/livingdex/dexsync/internal/artifact"
)

// BuildCatalog projects the species records into the species-catalog
// document: every catalog number in order, each with its localized names
// and the deterministic sprite URL.
func (p *Pipeline) BuildCatalog(species map[int]*SpeciesRecord) []artifact.SpeciesEntry {
	entries := make([]artifact.SpeciesEntry, 0, len(species))
	for id, sr := range species {
		entries = append(entries, artifact.SpeciesEntry{
			ID:     id,
			Num:    artifact.PadNum(id),
			Zh:     sr.Zh,
			En:     sr.En,
			Gen:    GenerationOf(id),
			Sprite: p.cfg.API.SpriteBaseURL + strconv.Itoa(id) + ".png",
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
