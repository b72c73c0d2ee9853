package compiler

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/livingdex/dexsync/internal/artifact"
	"github.com/livingdex/dexsync/internal/checkpoint"
	"github.com/livingdex/dexsync/internal/fetcher"
	"github.com/livingdex/dexsync/internal/pokeapi"
)

// FormRecord is the checkpoint payload for one externally numbered form
// variant. A record holding only Ref means the variant has no independent
// data and the client should use the base species record.
type FormRecord struct {
	Types         []string `json:"types,omitempty"`
	Stats         []int    `json:"stats,omitempty"`
	Abilities     []string `json:"abilities,omitempty"`
	HiddenAbility string   `json:"hiddenAbility,omitempty"`
	Height        int      `json:"height,omitempty"`
	Weight        int      `json:"weight,omitempty"`
	BaseExp       int      `json:"baseExp,omitempty"`
	BaseRef       int      `json:"baseRef,omitempty"`
	Ref           int      `json:"ref,omitempty"`
}

var spriteIDRe = regexp.MustCompile(`/(\d+)\.png$`)

// SpriteID extracts the numeric id a sprite URL is keyed by, or 0 when the
// URL does not end in a numeric filename.
func SpriteID(sprite string) int {
	m := spriteIDRe.FindStringSubmatch(sprite)
	if m == nil {
		return 0
	}
	id, _ := strconv.Atoi(m[1])
	return id
}

// FormTarget names one externally numbered variant to fetch.
type FormTarget struct {
	APIID  int // external numeric id, above the base catalog range
	NumInt int // owning catalog number
}

// FormTargets scans form and timeline entries for sprite URLs keyed by an
// external numeric id above the base catalog range. Duplicate ids keep the
// first owner seen.
func FormTargets(maxSpecies int, forms []artifact.FormEntry, timeline []artifact.TimelineEntry) []FormTarget {
	seen := make(map[int]struct{})
	var targets []FormTarget

	consider := func(sprite string, numInt int) {
		id := SpriteID(sprite)
		if id <= maxSpecies {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		targets = append(targets, FormTarget{APIID: id, NumInt: numInt})
	}

	for _, f := range forms {
		consider(f.Sprite, f.NumInt)
	}
	for _, t := range timeline {
		if t.IsBase {
			continue
		}
		consider(t.Sprite, t.NumInt)
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].APIID < targets[j].APIID })
	return targets
}

// FetchFormData fetches the independent attribute records for externally
// numbered form variants. A variant whose record cannot be fetched is
// cached as a pure reference to its owning species and not retried.
func (p *Pipeline) FetchFormData(ctx context.Context, targets []FormTarget) (map[int]*FormRecord, error) {
	store, err := checkpoint.Open(p.cfg.Checkpoint, "form-data", checkpoint.KindSpecies)
	if err != nil {
		return nil, err
	}
	defer store.Close() //nolint:errcheck

	saved, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int]*FormRecord)
	for k, rec := range saved {
		var fr FormRecord
		if err := checkpoint.Unmarshal(rec, &fr); err != nil {
			continue
		}
		out[k.NumericID()] = &fr
	}

	var toFetch []FormTarget
	for _, t := range targets {
		if _, ok := out[t.APIID]; !ok {
			toFetch = append(toFetch, t)
		}
	}

	log := zap.L().With(zap.String("stage", "form-data"))
	log.Info("fetching form variant data",
		zap.Int("cached", len(out)),
		zap.Int("to_fetch", len(toFetch)),
	)

	var mu sync.Mutex
	for start := 0; start < len(toFetch); start += p.cfg.API.BatchSize {
		batch := toFetch[start:min(start+p.cfg.API.BatchSize, len(toFetch))]

		g, gctx := errgroup.WithContext(ctx)
		for _, t := range batch {
			g.Go(func() error {
				pk, err := fetcher.GetTyped[pokeapi.Pokemon](gctx, p.api, pokeapi.PokemonURL(p.cfg.API.BaseURL, strconv.Itoa(t.APIID)))
				if err != nil {
					return err
				}
				rec := &FormRecord{Ref: t.NumInt}
				if pk != nil {
					rec = &FormRecord{
						Types:   typeNames(pk.Types),
						Stats:   statVector(pk.Stats),
						Height:  pk.Height,
						Weight:  pk.Weight,
						BaseExp: pk.BaseExperience,
						BaseRef: t.NumInt,
					}
					for _, a := range pk.Abilities {
						if a.IsHidden {
							rec.HiddenAbility = a.Ability.Name
						} else {
							rec.Abilities = append(rec.Abilities, a.Ability.Name)
						}
					}
				}
				mu.Lock()
				out[t.APIID] = rec
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "compiler: form data batch")
		}

		records := make(map[checkpoint.Key]checkpoint.Record, len(batch))
		for _, t := range batch {
			data, err := checkpoint.Marshal(out[t.APIID])
			if err != nil {
				return nil, err
			}
			records[checkpoint.SpeciesKey(t.APIID)] = data
		}
		if err := store.Save(ctx, records); err != nil {
			return nil, err
		}

		if err := p.batchDelay(ctx); err != nil {
			return nil, err
		}
	}

	log.Info("form data stage complete", zap.Int("total", len(out)))
	return out, nil
}
