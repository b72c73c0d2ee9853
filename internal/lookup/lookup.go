// Package lookup is the runtime resolution layer over the compiled detail
// document. Everything here is a pure function over immutable documents:
// no I/O, no mutation of the inputs, safe to call from any goroutine.
package lookup

import (
	"strconv"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/compiler"
)

// Entry is the minimal catalog-entry view the resolver needs: the owning
// catalog number and the sprite URL whose filename may encode an external
// variant id.
type Entry struct {
	NumInt int
	Sprite string
}

// ResolveDetail resolves the effective detail record for a catalog entry.
// The lookup key is the numeric id encoded in the sprite filename when
// present, else the entry's catalog number. A record carrying a base
// reference is a partial override and is merged onto its base species
// record, present override fields winning. Returns nil when no record can
// be found under either the derived key or the plain catalog number.
func ResolveDetail(entry Entry, doc *artifact.DetailDoc) *artifact.DetailRecord {
	if doc == nil {
		return nil
	}

	key := entry.NumInt
	if id := compiler.SpriteID(entry.Sprite); id != 0 {
		key = id
	}

	rec, ok := doc.Species[strconv.Itoa(key)]
	if !ok && key != entry.NumInt {
		rec, ok = doc.Species[strconv.Itoa(entry.NumInt)]
	}
	if !ok || rec == nil {
		return nil
	}

	if rec.BaseRef == nil {
		out := *rec
		return &out
	}

	base := doc.Species[strconv.Itoa(*rec.BaseRef)]
	if base == nil {
		out := *rec
		return &out
	}
	return mergeOntoBase(base, rec)
}

// mergeOntoBase clones the base record and overlays every field the
// override carries. Absence is a nil pointer or nil slice; a present zero
// value is real data and wins, so a form with stats of 0 or an empty type
// list would still shadow the base.
func mergeOntoBase(base, override *artifact.DetailRecord) *artifact.DetailRecord {
	out := *base
	out.BaseRef = override.BaseRef

	if override.Types != nil {
		out.Types = override.Types
	}
	if override.Stats != nil {
		out.Stats = override.Stats
	}
	if override.Abilities != nil {
		out.Abilities = override.Abilities
	}
	if override.HiddenAbility != nil {
		out.HiddenAbility = override.HiddenAbility
	}
	if override.Height != nil {
		out.Height = override.Height
	}
	if override.Weight != nil {
		out.Weight = override.Weight
	}
	if override.Genus != nil {
		out.Genus = override.Genus
	}
	if override.Flavor != nil {
		out.Flavor = override.Flavor
	}
	if override.EggGroups != nil {
		out.EggGroups = override.EggGroups
	}
	if override.CaptureRate != nil {
		out.CaptureRate = override.CaptureRate
	}
	if override.GenderRate != nil {
		out.GenderRate = override.GenderRate
	}
	if override.IsLegendary != nil {
		out.IsLegendary = override.IsLegendary
	}
	if override.IsMythical != nil {
		out.IsMythical = override.IsMythical
	}
	if override.Generation != nil {
		out.Generation = override.Generation
	}
	if override.EvoChainID != nil {
		out.EvoChainID = override.EvoChainID
	}
	if override.BaseExp != nil {
		out.BaseExp = override.BaseExp
	}
	return &out
}

// ResolveEvoChain returns the flattened evolution chain a detail record
// references, or nil when the record has no chain reference or the chain
// is absent from the document.
func ResolveEvoChain(detail *artifact.DetailRecord, doc *artifact.DetailDoc) []artifact.ChainStage {
	if detail == nil || doc == nil || detail.EvoChainID == nil {
		return nil
	}
	return doc.EvoChains[strconv.Itoa(*detail.EvoChainID)]
}

// AbilityName returns the localized ability name, falling back to the
// canonical identifier itself when untranslated.
func AbilityName(slug string, doc *artifact.DetailDoc) string {
	if doc != nil {
		if zh, ok := doc.Abilities[slug]; ok && zh != "" {
			return zh
		}
	}
	return slug
}
