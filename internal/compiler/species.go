package compiler

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/livingdex/dexsync/internal/checkpoint"
	"github.com/livingdex/dexsync/internal/config"
	"github.com/livingdex/dexsync/internal/fetcher"
	"github.com/livingdex/dexsync/internal/pokeapi"
)

// Pipeline drives the fetch stages against the species API and compiles
// their checkpointed results into artifact documents.
type Pipeline struct {
	cfg *config.Config
	api fetcher.Fetcher
}

// New builds a Pipeline over the given fetcher.
func New(cfg *config.Config, api fetcher.Fetcher) *Pipeline {
	return &Pipeline{cfg: cfg, api: api}
}

// SpeciesRecord is the checkpoint payload for one base species: the merged
// base-attributes and localized-metadata fields the artifacts need.
type SpeciesRecord struct {
	Zh            string   `json:"zh"`
	En            string   `json:"en"`
	Types         []string `json:"types"`
	Stats         []int    `json:"stats"`
	Abilities     []string `json:"abilities"`
	HiddenAbility string   `json:"hiddenAbility,omitempty"`
	Height        int      `json:"height"`
	Weight        int      `json:"weight"`
	Genus         string   `json:"genus"`
	Flavor        string   `json:"flavor"`
	EggGroups     []string `json:"eggGroups"`
	CaptureRate   int      `json:"captureRate"`
	GenderRate    int      `json:"genderRate"`
	IsLegendary   bool     `json:"isLegendary"`
	IsMythical    bool     `json:"isMythical"`
	Generation    int      `json:"generation"`
	EvoChainID    int      `json:"evoChainId,omitempty"`
	BaseExp       int      `json:"baseExp"`
}

// FetchSpecies runs the base-species stage: every catalog number from 1 to
// max_species, in fixed-size batches, resuming from the stage checkpoint.
// Numbers whose data is unavailable this run are skipped and retried on the
// next invocation.
func (p *Pipeline) FetchSpecies(ctx context.Context) (map[int]*SpeciesRecord, error) {
	store, err := checkpoint.Open(p.cfg.Checkpoint, "species", checkpoint.KindSpecies)
	if err != nil {
		return nil, err
	}
	defer store.Close() //nolint:errcheck

	saved, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int]*SpeciesRecord, p.cfg.API.MaxSpecies)
	for k, rec := range saved {
		var sr SpeciesRecord
		if err := checkpoint.Unmarshal(rec, &sr); err != nil {
			zap.L().Warn("dropping undecodable species record", zap.String("key", k.String()), zap.Error(err))
			continue
		}
		out[k.NumericID()] = &sr
	}

	log := zap.L().With(zap.String("stage", "species"))
	log.Info("fetching base species",
		zap.Int("max", p.cfg.API.MaxSpecies),
		zap.Int("cached", len(out)),
	)

	var mu sync.Mutex
	for start := 1; start <= p.cfg.API.MaxSpecies; start += p.cfg.API.BatchSize {
		end := min(start+p.cfg.API.BatchSize-1, p.cfg.API.MaxSpecies)

		var ids []int
		for id := start; id <= end; id++ {
			if _, ok := out[id]; !ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids {
			g.Go(func() error {
				rec, err := p.fetchOneSpecies(gctx, id)
				if err != nil {
					return err
				}
				if rec == nil {
					log.Warn("species data missing, will retry next run", zap.Int("id", id))
					return nil
				}
				mu.Lock()
				out[id] = rec
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrapf(err, "compiler: species batch %d-%d", start, end)
		}

		if err := p.saveSpecies(ctx, store, out); err != nil {
			return nil, err
		}
		log.Info("batch complete", zap.Int("through", end), zap.Int("fetched", len(out)))

		if err := p.batchDelay(ctx); err != nil {
			return nil, err
		}
	}

	log.Info("species stage complete", zap.Int("total", len(out)))
	return out, nil
}

func (p *Pipeline) fetchOneSpecies(ctx context.Context, id int) (*SpeciesRecord, error) {
	var (
		pk *pokeapi.Pokemon
		sp *pokeapi.Species
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pk, err = fetcher.GetTyped[pokeapi.Pokemon](gctx, p.api, pokeapi.PokemonURL(p.cfg.API.BaseURL, strconv.Itoa(id)))
		return err
	})
	g.Go(func() error {
		var err error
		sp, err = fetcher.GetTyped[pokeapi.Species](gctx, p.api, pokeapi.SpeciesURL(p.cfg.API.BaseURL, id))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if pk == nil || sp == nil {
		return nil, nil
	}

	rec := &SpeciesRecord{
		Zh:          sp.LocalizedName("zh-Hans", "zh-Hant", "en"),
		En:          sp.LocalizedName("en"),
		Types:       typeNames(pk.Types),
		Stats:       statVector(pk.Stats),
		Height:      pk.Height,
		Weight:      pk.Weight,
		Genus:       sp.LocalizedGenus("zh-Hans", "zh-Hant"),
		Flavor:      sp.LocalizedFlavor("zh-Hans", "zh-Hant"),
		CaptureRate: sp.CaptureRate,
		GenderRate:  sp.GenderRate,
		IsLegendary: sp.IsLegendary,
		IsMythical:  sp.IsMythical,
		Generation:  pokeapi.ParseGeneration(sp.Generation.Name),
		BaseExp:     pk.BaseExperience,
	}
	if rec.Zh == "" {
		rec.Zh = fmt.Sprintf("#%d", id)
	}
	if rec.En == "" {
		rec.En = fmt.Sprintf("#%d", id)
	}

	for _, a := range pk.Abilities {
		if a.IsHidden {
			rec.HiddenAbility = a.Ability.Name
		} else {
			rec.Abilities = append(rec.Abilities, a.Ability.Name)
		}
	}
	for _, eg := range sp.EggGroups {
		rec.EggGroups = append(rec.EggGroups, eg.Name)
	}
	if sp.EvolutionChain != nil {
		rec.EvoChainID = pokeapi.ExtractChainID(sp.EvolutionChain.URL)
	}

	return rec, nil
}

func (p *Pipeline) saveSpecies(ctx context.Context, store checkpoint.Store, out map[int]*SpeciesRecord) error {
	records := make(map[checkpoint.Key]checkpoint.Record, len(out))
	for id, rec := range out {
		data, err := checkpoint.Marshal(rec)
		if err != nil {
			return err
		}
		records[checkpoint.SpeciesKey(id)] = data
	}
	return store.Save(ctx, records)
}

// batchDelay pauses between batches to stay under the upstream's informal
// request budget, on top of the per-request limiter.
func (p *Pipeline) batchDelay(ctx context.Context) error {
	delay := time.Duration(p.cfg.API.BatchDelayMS) * time.Millisecond
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// AbilityNames collects the sorted set of ability slugs referenced by the
// fetched species records.
func AbilityNames(species map[int]*SpeciesRecord) []string {
	set := make(map[string]struct{})
	for _, rec := range species {
		for _, a := range rec.Abilities {
			set[a] = struct{}{}
		}
		if rec.HiddenAbility != "" {
			set[rec.HiddenAbility] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// typeNames orders a type slot list by slot and returns the slugs.
func typeNames(slots []pokeapi.TypeSlot) []string {
	sorted := make([]pokeapi.TypeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })
	names := make([]string, len(sorted))
	for i, s := range sorted {
		names[i] = s.Type.Name
	}
	return names
}

// statVector projects the API's named stats onto the canonical six-element
// vector. Stats absent from the response read as 0.
func statVector(stats []pokeapi.StatValue) []int {
	vec := make([]int, len(StatOrder))
	for i, name := range StatOrder {
		for _, s := range stats {
			if s.Stat.Name == name {
				vec[i] = s.BaseStat
				break
			}
		}
	}
	return vec
}
