package pokeapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSpeciesID(t *testing.T) {
	assert.Equal(t, 25, ExtractSpeciesID("https://pokeapi.co/api/v2/pokemon-species/25/"))
	assert.Equal(t, 1025, ExtractSpeciesID("https://pokeapi.co/api/v2/pokemon-species/1025"))
	assert.Equal(t, 0, ExtractSpeciesID("https://pokeapi.co/api/v2/pokemon/25/"))
	assert.Equal(t, 0, ExtractSpeciesID(""))
}

func TestExtractChainID(t *testing.T) {
	assert.Equal(t, 67, ExtractChainID("https://pokeapi.co/api/v2/evolution-chain/67/"))
	assert.Equal(t, 0, ExtractChainID("https://pokeapi.co/api/v2/evolution-chain/"))
}

func TestParseGeneration(t *testing.T) {
	assert.Equal(t, 1, ParseGeneration("generation-i"))
	assert.Equal(t, 4, ParseGeneration("generation-iv"))
	assert.Equal(t, 9, ParseGeneration("generation-ix"))
	assert.Equal(t, 0, ParseGeneration("generation-x"))
	assert.Equal(t, 0, ParseGeneration(""))
}

func TestLocalizedNameOrder(t *testing.T) {
	sp := &Species{Names: []LocalizedName{
		{Language: NamedResource{Name: "en"}, Name: "Pikachu"},
		{Language: NamedResource{Name: "zh-Hant"}, Name: "皮卡丘繁"},
	}}
	assert.Equal(t, "皮卡丘繁", sp.LocalizedName("zh-Hans", "zh-Hant", "en"))
	assert.Equal(t, "Pikachu", sp.LocalizedName("en"))
	assert.Equal(t, "", sp.LocalizedName("ja"))
}

func TestLocalizedNameCaseInsensitive(t *testing.T) {
	sp := &Species{Names: []LocalizedName{
		{Language: NamedResource{Name: "zh-hans"}, Name: "皮卡丘"},
	}}
	assert.Equal(t, "皮卡丘", sp.LocalizedName("zh-Hans"))
}

func TestLocalizedFlavorKeepsNewest(t *testing.T) {
	sp := &Species{FlavorTextEntries: []FlavorText{
		{Language: NamedResource{Name: "zh-Hans"}, FlavorText: "旧\n描述"},
		{Language: NamedResource{Name: "en"}, FlavorText: "ignored"},
		{Language: NamedResource{Name: "zh-Hans"}, FlavorText: "新\f描述"},
	}}
	assert.Equal(t, "新 描述", sp.LocalizedFlavor("zh-Hans", "zh-Hant"))
}
