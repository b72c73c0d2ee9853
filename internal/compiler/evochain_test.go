package compiler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livingdex/dexsync/internal/pokeapi"
)

func speciesRef(id int, name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{
		Name: name,
		URL:  "https://pokeapi.co/api/v2/pokemon-species/" + strconv.Itoa(id) + "/",
	}
}

func levelUp(min int) pokeapi.EvolutionDetail {
	return pokeapi.EvolutionDetail{
		Trigger:  pokeapi.NamedResource{Name: "level-up"},
		MinLevel: &min,
	}
}

func TestFlattenChainLinear(t *testing.T) {
	root := &pokeapi.ChainLink{
		Species: speciesRef(1, "bulbasaur"),
		EvolvesTo: []pokeapi.ChainLink{{
			Species:          speciesRef(2, "ivysaur"),
			EvolutionDetails: []pokeapi.EvolutionDetail{levelUp(16)},
			EvolvesTo: []pokeapi.ChainLink{{
				Species:          speciesRef(3, "venusaur"),
				EvolutionDetails: []pokeapi.EvolutionDetail{levelUp(32)},
			}},
		}},
	}

	stages := FlattenChain(root, map[int]string{1: "妙蛙种子", 2: "妙蛙草", 3: "妙蛙花"})
	require.Len(t, stages, 3)

	assert.Equal(t, 1, stages[0].ID)
	assert.Equal(t, "妙蛙种子", stages[0].Zh)
	assert.Nil(t, stages[0].Trigger, "the root stage evolves from nothing")

	require.NotNil(t, stages[1].Trigger)
	assert.Equal(t, "Lv.16", *stages[1].Trigger)
	require.NotNil(t, stages[2].Trigger)
	assert.Equal(t, "Lv.32", *stages[2].Trigger)
}

func TestFlattenChainBranchesPreOrder(t *testing.T) {
	// Eevee-style fan-out: each branch follows the root, first branch first.
	root := &pokeapi.ChainLink{
		Species: speciesRef(133, "eevee"),
		EvolvesTo: []pokeapi.ChainLink{
			{Species: speciesRef(134, "vaporeon"), EvolutionDetails: []pokeapi.EvolutionDetail{{
				Trigger: pokeapi.NamedResource{Name: "use-item"},
				Item:    &pokeapi.NamedResource{Name: "water-stone"},
			}}},
			{Species: speciesRef(135, "jolteon"), EvolutionDetails: []pokeapi.EvolutionDetail{{
				Trigger: pokeapi.NamedResource{Name: "use-item"},
				Item:    &pokeapi.NamedResource{Name: "thunder-stone"},
			}}},
		},
	}

	stages := FlattenChain(root, map[int]string{133: "伊布", 134: "水伊布", 135: "雷伊布"})
	require.Len(t, stages, 3)
	assert.Equal(t, []int{133, 134, 135}, []int{stages[0].ID, stages[1].ID, stages[2].ID})
	assert.Equal(t, "水之石", *stages[1].Trigger)
	assert.Equal(t, "雷之石", *stages[2].Trigger)
}

func TestFlattenChainUnknownNameFallsBackToSlug(t *testing.T) {
	root := &pokeapi.ChainLink{Species: speciesRef(999, "gholdengo")}
	stages := FlattenChain(root, map[int]string{})
	require.Len(t, stages, 1)
	assert.Equal(t, "gholdengo", stages[0].Zh)
}

func TestFlattenChainDeepNesting(t *testing.T) {
	// A degenerate 500-deep chain must flatten without recursion.
	leaf := pokeapi.ChainLink{Species: speciesRef(500, "leaf")}
	node := leaf
	for i := 499; i >= 1; i-- {
		node = pokeapi.ChainLink{
			Species:          speciesRef(i, "node"),
			EvolutionDetails: []pokeapi.EvolutionDetail{levelUp(i)},
			EvolvesTo:        []pokeapi.ChainLink{node},
		}
	}

	stages := FlattenChain(&node, map[int]string{})
	require.Len(t, stages, 500)
	assert.Equal(t, 1, stages[0].ID)
	assert.Equal(t, 500, stages[499].ID)
}

func TestDescribeTrigger(t *testing.T) {
	happiness := 160
	cases := []struct {
		name   string
		detail pokeapi.EvolutionDetail
		want   string
	}{
		{"plain level-up", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "level-up"}}, "升级"},
		{"level threshold", levelUp(36), "Lv.36"},
		{"happiness overrides level", pokeapi.EvolutionDetail{
			Trigger:      pokeapi.NamedResource{Name: "level-up"},
			MinLevel:     ptr(1),
			MinHappiness: &happiness,
		}, "亲密度≥160"},
		{"known move type overrides happiness", pokeapi.EvolutionDetail{
			Trigger:       pokeapi.NamedResource{Name: "level-up"},
			MinHappiness:  &happiness,
			KnownMoveType: &pokeapi.NamedResource{Name: "fairy"},
		}, "学会妖精属性招式"},
		{"location wins", pokeapi.EvolutionDetail{
			Trigger:  pokeapi.NamedResource{Name: "level-up"},
			MinLevel: ptr(20),
			Location: &pokeapi.NamedResource{Name: "mt-coronet"},
		}, "特定地点升级"},
		{"time of day suffix", pokeapi.EvolutionDetail{
			Trigger:      pokeapi.NamedResource{Name: "level-up"},
			MinHappiness: &happiness,
			TimeOfDay:    "night",
		}, "亲密度≥160(夜晚)"},
		{"plain trade", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "trade"}}, "通信交换"},
		{"trade with item", pokeapi.EvolutionDetail{
			Trigger:  pokeapi.NamedResource{Name: "trade"},
			HeldItem: &pokeapi.NamedResource{Name: "metal-coat"},
		}, "通信交换(携带金属膜)"},
		{"use item untranslated", pokeapi.EvolutionDetail{
			Trigger: pokeapi.NamedResource{Name: "use-item"},
			Item:    &pokeapi.NamedResource{Name: "mystery-stone"},
		}, "mystery-stone"},
		{"use item without item", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "use-item"}}, "使用道具"},
		{"shed", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "shed"}}, "蜕皮"},
		{"other", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "other"}}, "特殊条件"},
		{"empty", pokeapi.EvolutionDetail{}, "进化"},
		{"unknown passes through", pokeapi.EvolutionDetail{Trigger: pokeapi.NamedResource{Name: "spin"}}, "spin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, describeTrigger(&tc.detail))
		})
	}
}
