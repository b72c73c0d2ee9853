package compiler

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/livingdex/dexsync/internal/checkpoint"
	"github.com/livingdex/dexsync/internal/fetcher"
	"github.com/livingdex/dexsync/internal/pokeapi"
)

// FetchAbilities resolves ability slugs to localized display names, reusing
// the stage checkpoint across runs. Slugs whose lookup fails keep the slug
// itself as the display name so compilation never blocks on one ability.
func (p *Pipeline) FetchAbilities(ctx context.Context, names []string) (map[string]string, error) {
	store, err := checkpoint.Open(p.cfg.Checkpoint, "abilities", checkpoint.KindAbility)
	if err != nil {
		return nil, err
	}
	defer store.Close() //nolint:errcheck

	saved, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for k, rec := range saved {
		var zh string
		if err := checkpoint.Unmarshal(rec, &zh); err != nil {
			continue
		}
		out[k.ID] = zh
	}

	var toFetch []string
	for _, name := range names {
		if _, ok := out[name]; !ok {
			toFetch = append(toFetch, name)
		}
	}

	log := zap.L().With(zap.String("stage", "abilities"))
	log.Info("fetching ability translations",
		zap.Int("cached", len(out)),
		zap.Int("to_fetch", len(toFetch)),
	)

	// Ability payloads are small; run double-width batches.
	batchSize := p.cfg.API.BatchSize * 2
	for start := 0; start < len(toFetch); start += batchSize {
		batch := toFetch[start:min(start+batchSize, len(toFetch))]

		results := make([]string, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, name := range batch {
			g.Go(func() error {
				ab, err := fetcher.GetTyped[pokeapi.Ability](gctx, p.api, pokeapi.AbilityURL(p.cfg.API.BaseURL, name))
				if err != nil {
					return err
				}
				results[i] = name
				if ab != nil {
					if zh := localizedAbilityName(ab); zh != "" {
						results[i] = zh
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "compiler: ability batch")
		}

		records := make(map[checkpoint.Key]checkpoint.Record, len(batch))
		for i, name := range batch {
			out[name] = results[i]
			data, err := checkpoint.Marshal(results[i])
			if err != nil {
				return nil, err
			}
			records[checkpoint.AbilityKey(name)] = data
		}
		if err := store.Save(ctx, records); err != nil {
			return nil, err
		}

		if err := p.batchDelay(ctx); err != nil {
			return nil, err
		}
	}

	log.Info("ability stage complete", zap.Int("total", len(out)))
	return out, nil
}

func localizedAbilityName(ab *pokeapi.Ability) string {
	for _, lang := range []string{"zh-Hans", "zh-Hant"} {
		for _, n := range ab.Names {
			if strings.EqualFold(n.Language.Name, lang) {
				return n.Name
			}
		}
	}
	return ""
}
