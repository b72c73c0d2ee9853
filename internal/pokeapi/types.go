// Package pokeapi declares the wire shapes of the species REST API and
// small helpers for picking localized text out of them.
package pokeapi

import "strings"

// NamedResource is the API's ubiquitous {name, url} reference pair.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIResource is a bare {url} reference.
type APIResource struct {
	URL string `json:"url"`
}

// Pokemon is the base-attributes record for a species or a variant form.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"` // decimeters
	Weight         int           `json:"weight"` // hectograms
	BaseExperience int           `json:"base_experience"`
	Types          []TypeSlot    `json:"types"`
	Stats          []StatValue   `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities"`
	Sprites        SpriteSet     `json:"sprites"`
}

// TypeSlot carries one elemental type tag with its display slot.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatValue carries one named base statistic.
type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// AbilitySlot carries one ability reference with its hidden flag.
type AbilitySlot struct {
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// SpriteSet mirrors the nested sprite URL structure. Absent sprites are
// null in the API, hence the pointer fields.
type SpriteSet struct {
	FrontDefault *string       `json:"front_default"`
	FrontFemale  *string       `json:"front_female"`
	Other        *OtherSprites `json:"other"`
}

// OtherSprites holds the high-resolution sprite groups.
type OtherSprites struct {
	Home            HomeSprites    `json:"home"`
	OfficialArtwork ArtworkSprites `json:"official-artwork"`
}

// HomeSprites holds the HOME-style renders.
type HomeSprites struct {
	FrontDefault *string `json:"front_default"`
	FrontFemale  *string `json:"front_female"`
}

// ArtworkSprites holds the official artwork renders.
type ArtworkSprites struct {
	FrontDefault *string `json:"front_default"`
}

// Species is the localized-metadata record for a catalog number.
type Species struct {
	ID                int             `json:"id"`
	Names             []LocalizedName `json:"names"`
	Genera            []GenusEntry    `json:"genera"`
	FlavorTextEntries []FlavorText    `json:"flavor_text_entries"`
	EggGroups         []NamedResource `json:"egg_groups"`
	CaptureRate       int             `json:"capture_rate"`
	GenderRate        int             `json:"gender_rate"`
	IsLegendary       bool            `json:"is_legendary"`
	IsMythical        bool            `json:"is_mythical"`
	Generation        NamedResource   `json:"generation"`
	EvolutionChain    *APIResource    `json:"evolution_chain"`
}

// LocalizedName is one localized display name.
type LocalizedName struct {
	Language NamedResource `json:"language"`
	Name     string        `json:"name"`
}

// GenusEntry is one localized genus ("Seed Pokémon") string.
type GenusEntry struct {
	Language NamedResource `json:"language"`
	Genus    string        `json:"genus"`
}

// FlavorText is one localized flavor-text entry.
type FlavorText struct {
	Language   NamedResource `json:"language"`
	FlavorText string        `json:"flavor_text"`
}

// Ability is the ability record; only the localized names matter here.
type Ability struct {
	Name  string          `json:"name"`
	Names []LocalizedName `json:"names"`
}

// PokemonForm is the dedicated form sub-resource; only its default sprite
// is consumed.
type PokemonForm struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

// EvolutionChain is the hierarchical evolution graph for one chain id.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the evolution tree.
type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail describes the trigger for one transition.
type EvolutionDetail struct {
	Trigger       NamedResource  `json:"trigger"`
	MinLevel      *int           `json:"min_level"`
	MinHappiness  *int           `json:"min_happiness"`
	KnownMoveType *NamedResource `json:"known_move_type"`
	Location      *NamedResource `json:"location"`
	TimeOfDay     string         `json:"time_of_day"`
	HeldItem      *NamedResource `json:"held_item"`
	Item          *NamedResource `json:"item"`
}

// Name returns the first name matching the preferred languages, in order.
func (s *Species) LocalizedName(langs ...string) string {
	for _, lang := range langs {
		for _, n := range s.Names {
			if strings.EqualFold(n.Language.Name, lang) {
				return n.Name
			}
		}
	}
	return ""
}

// LocalizedGenus returns the first genus matching the preferred languages.
func (s *Species) LocalizedGenus(langs ...string) string {
	for _, lang := range langs {
		for _, g := range s.Genera {
			if strings.EqualFold(g.Language.Name, lang) {
				return g.Genus
			}
		}
	}
	return ""
}

// LocalizedFlavor returns the last flavor entry in any of the preferred
// languages (later entries come from newer releases), with embedded line
// and page breaks collapsed to spaces.
func (s *Species) LocalizedFlavor(langs ...string) string {
	flavor := ""
	for _, f := range s.FlavorTextEntries {
		for _, lang := range langs {
			if strings.EqualFold(f.Language.Name, lang) {
				flavor = f.FlavorText
			}
		}
	}
	flavor = strings.ReplaceAll(flavor, "\n", " ")
	flavor = strings.ReplaceAll(flavor, "\f", " ")
	return strings.TrimSpace(flavor)
}
