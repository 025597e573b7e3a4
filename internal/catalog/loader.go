package catalog

import (
	"context"
	"fmt"

	"pokecatcher/internal/platform/pokeapi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is the external species data API.
type Source interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	GetPokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	GetSpecies(ctx context.Context, id int) (*pokeapi.Species, error)
	GetEvolutionChain(ctx context.Context, chainURL string) (*pokeapi.EvolutionChain, error)
}

// Cache stores enriched entries between process restarts. A miss is
// reported with ok == false and a nil error.
type Cache interface {
	GetEntry(ctx context.Context, id int) (entry Entry, ok bool, err error)
	PutEntry(ctx context.Context, entry Entry) error
}

var pokeapiStatNames = map[string]string{
	"hp":              StatHP,
	"attack":          StatAttack,
	"defense":         StatDefense,
	"special-attack":  StatSpecialAttack,
	"special-defense": StatSpecialDefense,
	"speed":           StatSpeed,
}

// BuildEntry maps the detail and species payloads into an Entry. It fails
// when the payload is missing any of the six base stats.
func BuildEntry(id int, p *pokeapi.Pokemon, s *pokeapi.Species) (Entry, error) {
	if p == nil || s == nil {
		return Entry{}, fmt.Errorf("pokemon %d: missing payload", id)
	}

	stats := map[string]int{}
	for _, st := range p.Stats {
		if key, ok := pokeapiStatNames[st.Stat.Name]; ok {
			stats[key] = st.BaseStat
		}
	}
	if len(stats) != len(StatKeys) {
		return Entry{}, fmt.Errorf("pokemon %d: expected %d base stats, got %d", id, len(StatKeys), len(stats))
	}

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}

	return Entry{
		ID:               id,
		Name:             p.Name,
		ImageURL:         p.Sprites.FrontDefault,
		HeightDecimetres: p.Height,
		WeightHectograms: p.Weight,
		Types:            types,
		BaseStats: BaseStats{
			HP:             stats[StatHP],
			Attack:         stats[StatAttack],
			Defense:        stats[StatDefense],
			SpecialAttack:  stats[StatSpecialAttack],
			SpecialDefense: stats[StatSpecialDefense],
			Speed:          stats[StatSpeed],
		},
		IsLegendary: s.IsLegendary,
		Generation:  Generation(id),
	}, nil
}

// Merge appends incoming to existing and drops repeated ids, keeping the
// first occurrence. The whole combined set is rebuilt; existing is never
// modified.
func Merge(existing, incoming []Entry) []Entry {
	seen := make(map[int]struct{}, len(existing)+len(incoming))
	merged := make([]Entry, 0, len(existing)+len(incoming))
	for _, set := range [][]Entry{existing, incoming} {
		for _, e := range set {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged
}

type loader struct {
	source      Source
	cache       Cache
	logger      *zap.Logger
	concurrency int
}

// fetchPage enriches every listed resource concurrently. Failed items are
// logged and left out; the returned slice keeps list order.
func (l *loader) fetchPage(ctx context.Context, resources []pokeapi.NamedResource) (entries []Entry, dropped int) {
	results := make([]*Entry, len(resources))

	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, res := range resources {
		g.Go(func() error {
			entry, err := l.fetchEntry(ctx, res)
			if err != nil {
				l.logger.Warn("dropping catalog item",
					zap.String("url", res.URL),
					zap.Error(err))
				return nil
			}
			results[i] = &entry
			return nil
		})
	}
	_ = g.Wait()

	entries = make([]Entry, 0, len(results))
	for _, r := range results {
		if r == nil {
			dropped++
			continue
		}
		entries = append(entries, *r)
	}
	return entries, dropped
}

func (l *loader) fetchEntry(ctx context.Context, res pokeapi.NamedResource) (Entry, error) {
	id, err := pokeapi.IDFromURL(res.URL)
	if err != nil {
		return Entry{}, err
	}
	return l.fetchByID(ctx, id)
}

func (l *loader) fetchByID(ctx context.Context, id int) (Entry, error) {
	if l.cache != nil {
		cached, ok, err := l.cache.GetEntry(ctx, id)
		if err != nil {
			l.logger.Warn("catalog cache read failed", zap.Int("id", id), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	p, err := l.source.GetPokemon(ctx, id)
	if err != nil {
		return Entry{}, fmt.Errorf("pokemon %d: %w", id, err)
	}

	// Alternate forms point at their base species.
	speciesID := id
	if p.Species.URL != "" {
		if sid, err := pokeapi.IDFromURL(p.Species.URL); err == nil {
			speciesID = sid
		}
	}
	s, err := l.source.GetSpecies(ctx, speciesID)
	if err != nil {
		return Entry{}, fmt.Errorf("species %d: %w", speciesID, err)
	}

	entry, err := BuildEntry(id, p, s)
	if err != nil {
		return Entry{}, err
	}

	if l.cache != nil {
		if err := l.cache.PutEntry(ctx, entry); err != nil {
			l.logger.Warn("catalog cache write failed", zap.Int("id", id), zap.Error(err))
		}
	}
	return entry, nil
}
