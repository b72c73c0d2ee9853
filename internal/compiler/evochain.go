package compiler

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/checkpoint"
	"github.com/livingdex/dexsync/internal/fetcher"
	"github.com/livingdex/dexsync/internal/pokeapi"
)

// FetchEvoChains fetches every evolution chain referenced by the species
// records and flattens each into display order. speciesNames supplies the
// localized names keyed by catalog number; ids missing from it fall back to
// the API slug. A chain that cannot be fetched this run is cached as an
// empty list so the client degrades to "no chain" instead of erroring.
func (p *Pipeline) FetchEvoChains(ctx context.Context, species map[int]*SpeciesRecord) (map[int][]artifact.ChainStage, error) {
	store, err := checkpoint.Open(p.cfg.Checkpoint, "evo-chains", checkpoint.KindChain)
	if err != nil {
		return nil, err
	}
	defer store.Close() //nolint:errcheck

	saved, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int][]artifact.ChainStage)
	for k, rec := range saved {
		var stages []artifact.ChainStage
		if err := checkpoint.Unmarshal(rec, &stages); err != nil {
			continue
		}
		out[k.NumericID()] = stages
	}

	speciesNames := make(map[int]string, len(species))
	for id, rec := range species {
		speciesNames[id] = rec.Zh
	}

	chainIDs := make(map[int]struct{})
	for _, rec := range species {
		if rec.EvoChainID != 0 {
			chainIDs[rec.EvoChainID] = struct{}{}
		}
	}
	var toFetch []int
	for id := range chainIDs {
		if _, ok := out[id]; !ok {
			toFetch = append(toFetch, id)
		}
	}
	sort.Ints(toFetch)

	log := zap.L().With(zap.String("stage", "evo-chains"))
	log.Info("fetching evolution chains",
		zap.Int("cached", len(out)),
		zap.Int("to_fetch", len(toFetch)),
	)

	for start := 0; start < len(toFetch); start += p.cfg.API.BatchSize {
		batch := toFetch[start:min(start+p.cfg.API.BatchSize, len(toFetch))]

		results := make([][]artifact.ChainStage, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, id := range batch {
			g.Go(func() error {
				chain, err := fetcher.GetTyped[pokeapi.EvolutionChain](gctx, p.api, pokeapi.ChainURL(p.cfg.API.BaseURL, id))
				if err != nil {
					return err
				}
				if chain == nil {
					log.Warn("chain unavailable, caching empty", zap.Int("chain_id", id))
					results[i] = []artifact.ChainStage{}
					return nil
				}
				results[i] = FlattenChain(&chain.Chain, speciesNames)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "compiler: chain batch")
		}

		records := make(map[checkpoint.Key]checkpoint.Record, len(batch))
		for i, id := range batch {
			out[id] = results[i]
			data, err := checkpoint.Marshal(results[i])
			if err != nil {
				return nil, err
			}
			records[checkpoint.ChainKey(id)] = data
		}
		if err := store.Save(ctx, records); err != nil {
			return nil, err
		}

		if err := p.batchDelay(ctx); err != nil {
			return nil, err
		}
	}

	log.Info("chain stage complete", zap.Int("total", len(out)))
	return out, nil
}

// FlattenChain linearizes an evolution tree into pre-order display order
// with an explicit stack, so pathological nesting can never exhaust the
// call stack. The root stage has a nil trigger; each descendant's trigger
// is derived from its first evolution-details entry.
func FlattenChain(root *pokeapi.ChainLink, speciesNames map[int]string) []artifact.ChainStage {
	type frame struct {
		node    *pokeapi.ChainLink
		trigger *string
	}

	stages := []artifact.ChainStage{}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := pokeapi.ExtractSpeciesID(f.node.Species.URL)
		zh := speciesNames[id]
		if zh == "" {
			zh = f.node.Species.Name
		}
		stages = append(stages, artifact.ChainStage{ID: id, Zh: zh, Trigger: f.trigger})

		// Push children in reverse so the first branch is visited first.
		for i := len(f.node.EvolvesTo) - 1; i >= 0; i-- {
			child := &f.node.EvolvesTo[i]
			var trigger *string
			if len(child.EvolutionDetails) > 0 {
				t := describeTrigger(&child.EvolutionDetails[0])
				trigger = &t
			}
			stack = append(stack, frame{node: child, trigger: trigger})
		}
	}

	return stages
}

// describeTrigger renders one evolution-details entry as display text.
// Rules apply in priority order within the level-up family: a known-move
// type or location condition overrides happiness, which overrides the
// plain level threshold.
func describeTrigger(t *pokeapi.EvolutionDetail) string {
	switch t.Trigger.Name {
	case "level-up":
		s := "升级"
		if t.MinLevel != nil {
			s = "Lv." + strconv.Itoa(*t.MinLevel)
		}
		if t.MinHappiness != nil {
			s = fmt.Sprintf("亲密度≥%d", *t.MinHappiness)
		}
		if t.KnownMoveType != nil {
			typeZh := t.KnownMoveType.Name
			if info, ok := TypeData[t.KnownMoveType.Name]; ok {
				typeZh = info.Zh
			}
			s = fmt.Sprintf("学会%s属性招式", typeZh)
		}
		if t.Location != nil {
			s = "特定地点升级"
		}
		switch t.TimeOfDay {
		case "day":
			s += "(白天)"
		case "night":
			s += "(夜晚)"
		}
		return s
	case "trade":
		s := "通信交换"
		if t.HeldItem != nil {
			itemZh := t.HeldItem.Name
			if zh, ok := HeldItemZh[t.HeldItem.Name]; ok {
				itemZh = zh
			}
			s += fmt.Sprintf("(携带%s)", itemZh)
		}
		return s
	case "use-item":
		if t.Item != nil {
			if zh, ok := ItemZh[t.Item.Name]; ok {
				return zh
			}
			return t.Item.Name
		}
		return "使用道具"
	case "shed":
		return "蜕皮"
	case "other":
		return "特殊条件"
	case "":
		return "进化"
	default:
		return t.Trigger.Name
	}
}
