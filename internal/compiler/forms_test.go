package compiler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormDescriptorsIntegrity(t *testing.T) {
	cfg := testConfig(t, 1025)
	descs := FormDescriptors(cfg.API)
	require.NotEmpty(t, descs)

	seen := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		assert.NotEmpty(t, d.ID)
		assert.Greater(t, d.Num, 0, "descriptor %s needs an owning species", d.ID)

		_, dup := seen[d.ID]
		assert.False(t, dup, "duplicate form id %s", d.ID)
		seen[d.ID] = struct{}{}

		switch d.Strategy {
		case StrategyHardcoded:
			assert.NotEmpty(t, d.Sprite, "hardcoded descriptor %s needs a sprite", d.ID)
		case StrategyPokemonForm, StrategyPokemon:
			assert.NotEmpty(t, d.Slug, "descriptor %s needs a fetch slug", d.ID)
		}
	}
}

func TestFormDescriptorsKnownSets(t *testing.T) {
	cfg := testConfig(t, 1025)
	descs := FormDescriptors(cfg.API)

	byID := make(map[string]Descriptor, len(descs))
	counts := map[Strategy]int{}
	gmax := 0
	for _, d := range descs {
		byID[d.ID] = d
		counts[d.Strategy]++
		if d.Section == "gmax" {
			gmax++
		}
	}

	// 26 letters plus the two punctuation variants.
	unown := 0
	for _, d := range descs {
		if d.Num == 201 {
			unown++
		}
	}
	assert.Equal(t, 28, unown)

	assert.Contains(t, byID, "a-raichu")
	assert.Contains(t, byID, "g-meowth")
	assert.Contains(t, byID, "h-zoroark")
	assert.Contains(t, byID, "p-wooper")
	assert.Equal(t, 31, gmax)
	assert.Greater(t, counts[StrategyGender], 0)
	assert.Greater(t, counts[StrategyPokemonForm], 0)
}

func TestFetchFormsFallbackSprite(t *testing.T) {
	cfg := testConfig(t, 1025)
	api := newStubFetcher() // every lookup misses

	p := New(cfg, api)
	entries, err := p.FetchForms(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		require.NotEmpty(t, e.Sprite, "entry %s must never publish an empty sprite", e.ID)
	}
}

func TestFetchFormsCachesGenderLookups(t *testing.T) {
	cfg := testConfig(t, 1025)
	api := newStubFetcher()
	female := fmt.Sprintf("%s25-f.png", cfg.API.SpriteBaseURL)
	api.responses[cfg.API.BaseURL+"/pokemon/25"] = fmt.Sprintf(
		`{"id": 25, "sprites": {"other": {"home": {"front_female": %q}}}}`, female)

	p := New(cfg, api)
	_, err := p.FetchForms(context.Background())
	require.NoError(t, err)
	firstCalls := api.calls[cfg.API.BaseURL+"/pokemon/25"]
	require.Equal(t, 1, firstCalls)

	entries, err := p.FetchForms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstCalls, api.calls[cfg.API.BaseURL+"/pokemon/25"], "cached sprite is not refetched")

	var found bool
	for _, e := range entries {
		if e.Sprite == female {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFetchFormsSortedByNumber(t *testing.T) {
	cfg := testConfig(t, 1025)
	p := New(cfg, newStubFetcher())

	entries, err := p.FetchForms(context.Background())
	require.NoError(t, err)
	for i := 1; i < len(entries); i++ {
		require.LessOrEqual(t, entries[i-1].NumInt, entries[i].NumInt)
	}
}
