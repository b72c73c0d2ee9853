package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livingdex/dexsync/internal/config"
	"github.com/livingdex/dexsync/internal/pokeapi"
)

// stubFetcher serves canned JSON by URL and counts requests.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	calls     map[string]int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		responses: make(map[string]string),
		calls:     make(map[string]int),
	}
}

func (s *stubFetcher) GetJSON(_ context.Context, url string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[url]++
	body, ok := s.responses[url]
	if !ok {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

func (s *stubFetcher) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func testConfig(t *testing.T, maxSpecies int) *config.Config {
	t.Helper()
	return &config.Config{
		API: config.APIConfig{
			BaseURL:       "https://api.test",
			MaxSpecies:    maxSpecies,
			BatchSize:     5,
			FormBatchSize: 8,
			SpriteBaseURL: "https://sprites.test/home/",
			ArtSpriteBase: "https://sprites.test/art/",
		},
		Checkpoint: config.CheckpointConfig{Driver: "file", Dir: t.TempDir()},
	}
}

func stubSpecies(s *stubFetcher, base string, id int, zh string) {
	s.responses[fmt.Sprintf("%s/pokemon/%d", base, id)] = fmt.Sprintf(`{
		"id": %d, "height": 4, "weight": 60, "base_experience": 112,
		"types": [
			{"slot": 2, "type": {"name": "flying"}},
			{"slot": 1, "type": {"name": "electric"}}
		],
		"stats": [
			{"base_stat": 35, "stat": {"name": "hp"}},
			{"base_stat": 90, "stat": {"name": "speed"}}
		],
		"abilities": [
			{"is_hidden": false, "ability": {"name": "static"}},
			{"is_hidden": true, "ability": {"name": "lightning-rod"}}
		]
	}`, id)
	s.responses[fmt.Sprintf("%s/pokemon-species/%d", base, id)] = fmt.Sprintf(`{
		"id": %d,
		"names": [
			{"language": {"name": "zh-Hans"}, "name": "%s"},
			{"language": {"name": "en"}, "name": "Species%d"}
		],
		"genera": [{"language": {"name": "zh-Hans"}, "genus": "鼠宝可梦"}],
		"flavor_text_entries": [{"language": {"name": "zh-Hans"}, "flavor_text": "描述"}],
		"egg_groups": [{"name": "field"}, {"name": "fairy"}],
		"capture_rate": 190, "gender_rate": 4,
		"generation": {"name": "generation-i"},
		"evolution_chain": {"url": "https://api.test/evolution-chain/10/"}
	}`, id, zh, id)
}

func TestFetchSpecies(t *testing.T) {
	cfg := testConfig(t, 3)
	api := newStubFetcher()
	for id := 1; id <= 3; id++ {
		stubSpecies(api, cfg.API.BaseURL, id, fmt.Sprintf("宝可梦%d", id))
	}

	p := New(cfg, api)
	out, err := p.FetchSpecies(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	rec := out[1]
	assert.Equal(t, "宝可梦1", rec.Zh)
	assert.Equal(t, "Species1", rec.En)
	assert.Equal(t, []string{"electric", "flying"}, rec.Types, "types follow slot order")
	assert.Equal(t, []int{35, 0, 0, 0, 0, 90}, rec.Stats, "absent stats read as zero")
	assert.Equal(t, []string{"static"}, rec.Abilities)
	assert.Equal(t, "lightning-rod", rec.HiddenAbility)
	assert.Equal(t, []string{"field", "fairy"}, rec.EggGroups)
	assert.Equal(t, 1, rec.Generation)
	assert.Equal(t, 10, rec.EvoChainID)
	assert.Equal(t, 112, rec.BaseExp)
}

func TestFetchSpeciesResumesFromCheckpoint(t *testing.T) {
	cfg := testConfig(t, 2)
	api := newStubFetcher()
	stubSpecies(api, cfg.API.BaseURL, 1, "甲")
	stubSpecies(api, cfg.API.BaseURL, 2, "乙")

	p := New(cfg, api)
	_, err := p.FetchSpecies(context.Background())
	require.NoError(t, err)
	firstRun := api.totalCalls()
	assert.Equal(t, 4, firstRun)

	out, err := p.FetchSpecies(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, firstRun, api.totalCalls(), "a completed run refetches nothing")
}

func TestFetchSpeciesSkipsMissingAndRetriesNextRun(t *testing.T) {
	cfg := testConfig(t, 2)
	api := newStubFetcher()
	stubSpecies(api, cfg.API.BaseURL, 1, "甲")
	// id 2 has no data this run.

	p := New(cfg, api)
	out, err := p.FetchSpecies(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)

	// The data shows up; the next run picks up only the gap.
	stubSpecies(api, cfg.API.BaseURL, 2, "乙")
	out, err = p.FetchSpecies(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 1, api.calls[fmt.Sprintf("%s/pokemon/%d", cfg.API.BaseURL, 1)])
}

func TestFetchSpeciesNameFallback(t *testing.T) {
	cfg := testConfig(t, 1)
	api := newStubFetcher()
	api.responses[cfg.API.BaseURL+"/pokemon/1"] = `{"id": 1}`
	api.responses[cfg.API.BaseURL+"/pokemon-species/1"] = `{"id": 1, "names": []}`

	p := New(cfg, api)
	out, err := p.FetchSpecies(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "#1", out[1].Zh)
	assert.Equal(t, "#1", out[1].En)
}

func TestStatVectorCompleteness(t *testing.T) {
	vec := statVector(nil)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, vec)

	vec = statVector([]pokeapi.StatValue{
		{BaseStat: 1, Stat: pokeapi.NamedResource{Name: "speed"}},
		{BaseStat: 2, Stat: pokeapi.NamedResource{Name: "special-attack"}},
		{BaseStat: 3, Stat: pokeapi.NamedResource{Name: "unknown-stat"}},
	})
	assert.Equal(t, []int{0, 0, 0, 2, 0, 1}, vec)
}

func TestAbilityNames(t *testing.T) {
	species := map[int]*SpeciesRecord{
		1: {Abilities: []string{"overgrow"}, HiddenAbility: "chlorophyll"},
		2: {Abilities: []string{"overgrow"}},
		3: {},
	}
	assert.Equal(t, []string{"chlorophyll", "overgrow"}, AbilityNames(species))
}

func TestGenerationOf(t *testing.T) {
	assert.Equal(t, 1, GenerationOf(1))
	assert.Equal(t, 1, GenerationOf(151))
	assert.Equal(t, 2, GenerationOf(152))
	assert.Equal(t, 9, GenerationOf(1025))
	assert.Equal(t, 0, GenerationOf(1026))
	assert.Equal(t, 0, GenerationOf(0))
}
