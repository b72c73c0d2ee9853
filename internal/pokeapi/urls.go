package pokeapi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	speciesIDRe = regexp.MustCompile(`/pokemon-species/(\d+)/?$`)
	chainIDRe   = regexp.MustCompile(`/evolution-chain/(\d+)/?$`)
)

// ExtractSpeciesID pulls the numeric species id out of a reference URL.
// Returns 0 when the URL does not match.
func ExtractSpeciesID(url string) int {
	m := speciesIDRe.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, _ := strconv.Atoi(m[1])
	return id
}

// ExtractChainID pulls the numeric evolution-chain id out of a reference
// URL. Returns 0 when the URL does not match.
func ExtractChainID(url string) int {
	m := chainIDRe.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, _ := strconv.Atoi(m[1])
	return id
}

var romanGenerations = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5,
	"vi": 6, "vii": 7, "viii": 8, "ix": 9,
}

// ParseGeneration maps a "generation-<roman>" field to its number.
// Unrecognized values map to 0.
func ParseGeneration(name string) int {
	roman := strings.TrimPrefix(name, "generation-")
	return romanGenerations[roman]
}

// PokemonURL builds the base-attributes endpoint for an id or slug.
func PokemonURL(base string, idOrSlug string) string {
	return fmt.Sprintf("%s/pokemon/%s", base, idOrSlug)
}

// SpeciesURL builds the species-metadata endpoint for a numeric id.
func SpeciesURL(base string, id int) string {
	return fmt.Sprintf("%s/pokemon-species/%d", base, id)
}

// AbilityURL builds the ability endpoint for an ability name.
func AbilityURL(base string, name string) string {
	return fmt.Sprintf("%s/ability/%s", base, name)
}

// ChainURL builds the evolution-chain endpoint for a chain id.
func ChainURL(base string, id int) string {
	return fmt.Sprintf("%s/evolution-chain/%d", base, id)
}

// FormURL builds the pokemon-form endpoint for a form slug.
func FormURL(base string, slug string) string {
	return fmt.Sprintf("%s/pokemon-form/%s", base, slug)
}
