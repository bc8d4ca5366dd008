package ingest

import (
	"context"
	"sort"
	"sync"

	"steward/socialhub/internal/model"
)

// RawItem is one provider item before it is merged into the content store.
type RawItem struct {
	ExternalID string
	Payload    model.Payload
}

// Fetcher pulls recent items for one connected account.
type Fetcher interface {
	Fetch(ctx context.Context, account model.EligibleAccount) ([]RawItem, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, account model.EligibleAccount) ([]RawItem, error)

func (f FetcherFunc) Fetch(ctx context.Context, account model.EligibleAccount) ([]RawItem, error) {
	return f(ctx, account)
}

// Registry maps a platform name to its fetcher.
type Registry struct {
	mu       sync.RWMutex
	fetchers map[string]Fetcher
}

func NewRegistry() *Registry {
	return &Registry{fetchers: make(map[string]Fetcher)}
}

// Register replaces any fetcher previously registered for platform.
func (r *Registry) Register(platform string, f Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[platform] = f
}

func (r *Registry) Lookup(platform string) (Fetcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fetchers[platform]
	return f, ok
}

func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platforms := make([]string, 0, len(r.fetchers))
	for p := range r.fetchers {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}
