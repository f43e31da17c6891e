package pages

import (
	"context"
	"errors"
	"log"
	"sync"
)

// PageFetcher is the part of Client the service needs.
type PageFetcher interface {
	FetchPage(ctx context.Context, category, slug string) (*Page, error)
}

// Service is the policy layer over Client: transport failures degrade to
// ErrNotFound (the UI shows the catalog-derived fallback instead of an
// error), and successful fetches are cached for the process lifetime.
// Catalogs are small, so the unbounded cache is a memory caveat, not a
// correctness one.
type Service struct {
	fetcher PageFetcher

	mu    sync.Mutex
	cache map[string]*Page
}

// NewService creates a page service over the given fetcher.
func NewService(fetcher PageFetcher) *Service {
	return &Service{fetcher: fetcher, cache: make(map[string]*Page)}
}

// Get returns the document for a slug. The only error it returns is
// ErrNotFound; load failures are logged and degraded to it.
func (s *Service) Get(ctx context.Context, category, slug string) (*Page, error) {
	key := category + "/" + slug

	s.mu.Lock()
	if page, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return page, nil
	}
	s.mu.Unlock()

	page, err := s.fetcher.FetchPage(ctx, category, slug)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			log.Printf("pages: %v", loadErr)
		}
		return nil, ErrNotFound
	}

	s.mu.Lock()
	s.cache[key] = page
	s.mu.Unlock()
	return page, nil
}
