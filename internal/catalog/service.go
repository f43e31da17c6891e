package catalog

import (
	"context"
	"log"
	"sync"
	"time"
)

// cacheTTL is how long a loaded category tree is reused before a fresh
// fetch replaces it.
const cacheTTL = 5 * time.Minute

// Fetcher is the part of Client the service needs; it exists so tests can
// substitute a canned tree.
type Fetcher interface {
	FetchMenu(ctx context.Context, category string) ([]*Node, error)
}

type cacheEntry struct {
	tree     []*Node
	loadedAt time.Time
}

// Service loads normalized category trees with a per-category TTL cache.
//
// Fetch or decode failures yield an empty tree, not an error: callers must
// treat an empty tree as "not yet loaded or unavailable", never as "category
// has no content". Concurrent loads for the same category are not
// deduplicated; both populate the cache slot and the last write wins.
type Service struct {
	fetcher  Fetcher
	audience Audience

	mu    sync.Mutex
	cache map[string]cacheEntry

	now       func() time.Time
	onRefresh func(category string)
}

// NewService creates a catalog service for the given audience.
func NewService(fetcher Fetcher, audience Audience) *Service {
	if audience == "" {
		audience = AudienceFull
	}
	return &Service{
		fetcher:  fetcher,
		audience: audience,
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// OnRefresh registers a hook invoked after a category's cache entry is
// replaced with freshly fetched data. Must be set before Load is called.
func (s *Service) OnRefresh(fn func(category string)) {
	s.onRefresh = fn
}

// Load returns the normalized tree for a category, reusing a cached tree
// loaded less than the TTL ago.
func (s *Service) Load(ctx context.Context, category string) []*Node {
	s.mu.Lock()
	if entry, ok := s.cache[category]; ok && s.now().Sub(entry.loadedAt) < cacheTTL {
		s.mu.Unlock()
		return entry.tree
	}
	s.mu.Unlock()

	raw, err := s.fetcher.FetchMenu(ctx, category)
	if err != nil {
		log.Printf("catalog: load %q: %v", category, err)
		return nil
	}
	tree := Normalize(raw, s.audience)

	s.mu.Lock()
	s.cache[category] = cacheEntry{tree: tree, loadedAt: s.now()}
	s.mu.Unlock()

	if s.onRefresh != nil {
		s.onRefresh(category)
	}
	return tree
}

// Invalidate drops the cached tree for a category, forcing the next Load
// to fetch.
func (s *Service) Invalidate(category string) {
	s.mu.Lock()
	delete(s.cache, category)
	s.mu.Unlock()
}
