package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"pokecatcher/internal/platform/pokeapi"

	"go.uber.org/zap"
)

type Config struct {
	PageSize    int
	Concurrency int
}

// Service owns the accumulated catalog for the life of the process. The
// catalog only grows; pages are loaded one at a time.
type Service struct {
	source   Source
	loader   *loader
	logger   *zap.Logger
	pageSize int

	loading atomic.Bool

	mu        sync.RWMutex
	entries   []Entry
	offset    int
	total     int
	exhausted bool
}

func NewService(source Source, cache Cache, logger *zap.Logger, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		loader: &loader{
			source:      source,
			cache:       cache,
			logger:      logger,
			concurrency: cfg.Concurrency,
		},
		logger:   logger,
		pageSize: cfg.PageSize,
	}
}

// LoadNextPage fetches the page at the current offset and merges it into the
// catalog. A call made while another load is running returns
// ErrLoadInProgress without touching the source.
func (s *Service) LoadNextPage(ctx context.Context) (PageResult, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return PageResult{}, ErrLoadInProgress
	}
	defer s.loading.Store(false)

	s.mu.RLock()
	offset, exhausted, total := s.offset, s.exhausted, s.total
	s.mu.RUnlock()

	if exhausted {
		return PageResult{NextOffset: offset, Exhausted: true, Total: total}, nil
	}

	list, err := s.source.ListPokemon(ctx, s.pageSize, offset)
	if err != nil {
		return PageResult{}, fmt.Errorf("list pokemon at offset %d: %w", offset, err)
	}

	if len(list.Results) == 0 {
		s.mu.Lock()
		s.exhausted = true
		s.total = list.Count
		s.mu.Unlock()
		s.logger.Info("catalog exhausted", zap.Int("offset", offset))
		return PageResult{NextOffset: offset, Exhausted: true, Total: list.Count}, nil
	}

	fetched, dropped := s.loader.fetchPage(ctx, list.Results)
	// Items failed because the caller went away, not on their own; keep the
	// offset so the page is requested again.
	if err := ctx.Err(); err != nil {
		return PageResult{}, fmt.Errorf("load page at offset %d: %w", offset, err)
	}

	s.mu.Lock()
	before := len(s.entries)
	s.entries = Merge(s.entries, fetched)
	appended := append([]Entry(nil), s.entries[before:]...)
	s.offset = offset + s.pageSize
	s.total = list.Count
	next := s.offset
	s.mu.Unlock()

	s.logger.Info("catalog page loaded",
		zap.Int("offset", offset),
		zap.Int("listed", len(list.Results)),
		zap.Int("appended", len(appended)),
		zap.Int("dropped", dropped))

	return PageResult{
		Appended:   appended,
		NextOffset: next,
		Total:      list.Count,
		Dropped:    dropped,
	}, nil
}

// Snapshot returns the catalog as currently accumulated. The slice is shared
// and must not be modified.
func (s *Service) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Exhausted reports whether the source has no further pages.
func (s *Service) Exhausted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exhausted
}

// View derives the filtered and sorted listing from the current snapshot.
func (s *Service) View(query string, f Filters, sort Sort) []Entry {
	return DeriveView(s.Snapshot(), query, f, sort)
}

func (s *Service) Autocomplete(prefix string) []Entry {
	return Autocomplete(s.Snapshot(), prefix)
}

// Get returns the entry for id, fetching it from the source when it has not
// been paged in yet. Fetched entries are not added to the catalog.
func (s *Service) Get(ctx context.Context, id int) (Entry, error) {
	for _, e := range s.Snapshot() {
		if e.ID == id {
			return e, nil
		}
	}

	entry, err := s.loader.fetchByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return Entry{}, fmt.Errorf("pokemon %d: %w", id, ErrNotFound)
		}
		return Entry{}, err
	}
	return entry, nil
}

// Species returns the flavor text and flattened evolution chain for id.
func (s *Service) Species(ctx context.Context, id int) (SpeciesDetail, error) {
	sp, err := s.source.GetSpecies(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return SpeciesDetail{}, fmt.Errorf("species %d: %w", id, ErrNotFound)
		}
		return SpeciesDetail{}, fmt.Errorf("species %d: %w", id, err)
	}

	detail := SpeciesDetail{
		ID:          id,
		IsLegendary: sp.IsLegendary,
		FlavorText:  FlavorText(sp, "en"),
	}
	if sp.EvolutionChain.URL == "" {
		return detail, nil
	}

	chain, err := s.source.GetEvolutionChain(ctx, sp.EvolutionChain.URL)
	if err != nil {
		return SpeciesDetail{}, fmt.Errorf("evolution chain for species %d: %w", id, err)
	}
	detail.Evolution = FlattenChain(chain.Chain)
	return detail, nil
}

func isNotFound(err error) bool {
	var statusErr *pokeapi.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
