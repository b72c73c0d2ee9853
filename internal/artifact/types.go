// Package artifact declares the compiled document schemas consumed by the
// runtime client, and JSON read/write helpers for them. Field names match
// the published artifact files, which the client fetches over plain HTTP.
package artifact

import "fmt"

// SpeciesEntry is one row of the species-catalog document.
type SpeciesEntry struct {
	ID     int    `json:"id"`
	Num    string `json:"num"`
	Zh     string `json:"zh"`
	En     string `json:"en"`
	Gen    int    `json:"gen"`
	Sprite string `json:"sprite"`
}

// FormEntry is one row of the form-variant document.
type FormEntry struct {
	ID      string `json:"id"`
	Num     string `json:"num"`
	NumInt  int    `json:"numInt"`
	Zh      string `json:"zh"`
	En      string `json:"en"`
	Sprite  string `json:"sprite"`
	Section string `json:"section"`
}

// TimelineEntry is one row of the reconciled collection timeline: every
// base species plus every externally sourced variant, in source order.
type TimelineEntry struct {
	ID      string `json:"id"`
	Num     string `json:"num"`
	NumInt  int    `json:"numInt"`
	Zh      string `json:"zh"`
	En      string `json:"en"`
	Sprite  string `json:"sprite"`
	Section string `json:"section"`
	IsBase  bool   `json:"isBase"`
	// SourceFile is the external sprite filename the entry was derived
	// from; empty for base entries.
	SourceFile string `json:"sourceFile,omitempty"`
}

// TypeInfo is the static per-type display metadata.
type TypeInfo struct {
	Zh    string `json:"zh"`
	Color string `json:"color"`
}

// Meta is the static metadata block of the detail document.
type Meta struct {
	Types     map[string]TypeInfo `json:"types"`
	EggGroups map[string]string   `json:"eggGroups"`
}

// DetailRecord is one entry of the detail document's species collection.
// Fields that participate in base-record inheritance are pointers: a nil
// pointer means "absent, fall back to the base record", while a present
// zero value is real data and must win the merge.
type DetailRecord struct {
	Types         []string `json:"types,omitempty"`
	Stats         []int    `json:"stats,omitempty"`
	Abilities     []string `json:"abilities,omitempty"`
	HiddenAbility *string  `json:"hiddenAbility,omitempty"`
	Height        *int     `json:"height,omitempty"`
	Weight        *int     `json:"weight,omitempty"`
	Genus         *string  `json:"genus,omitempty"`
	Flavor        *string  `json:"flavor,omitempty"`
	EggGroups     []string `json:"eggGroups,omitempty"`
	CaptureRate   *int     `json:"captureRate,omitempty"`
	GenderRate    *int     `json:"genderRate,omitempty"`
	IsLegendary   *bool    `json:"isLegendary,omitempty"`
	IsMythical    *bool    `json:"isMythical,omitempty"`
	Generation    *int     `json:"generation,omitempty"`
	EvoChainID    *int     `json:"evoChainId,omitempty"`
	BaseExp       *int     `json:"baseExp,omitempty"`
	// BaseRef marks a partial-override form record: the catalog number
	// of the base species whose fields fill the gaps.
	BaseRef *int `json:"baseRef,omitempty"`
}

// ChainStage is one flattened evolution-chain element. Trigger is nil for
// the chain root.
type ChainStage struct {
	ID      int     `json:"id"`
	Zh      string  `json:"zh"`
	Trigger *string `json:"trigger"`
}

// DetailDoc is the merged detail document.
type DetailDoc struct {
	Meta      Meta                     `json:"meta"`
	Species   map[string]*DetailRecord `json:"pokemon"`
	EvoChains map[string][]ChainStage  `json:"evoChains"`
	Abilities map[string]string        `json:"abilities"`
}

// DistributionEvent is one real-world giveaway record.
type DistributionEvent struct {
	Zh     string `json:"zh"`
	OT     string `json:"ot"`
	Level  *int   `json:"level"`
	Date   string `json:"date"`
	Method string `json:"method"`
	Games  string `json:"games"`
	Gen    int    `json:"gen"`
	Year   string `json:"year"`
}

// EventGroup is the per-species grouping of distribution events in the
// event artifact, sorted newest generation first, then year descending.
type EventGroup struct {
	NumInt int                 `json:"numInt"`
	Zh     string              `json:"zh"`
	Events []DistributionEvent `json:"events"`
}

// PadNum renders a catalog number in the artifact's zero-padded form.
func PadNum(id int) string {
	return fmt.Sprintf("%04d", id)
}
