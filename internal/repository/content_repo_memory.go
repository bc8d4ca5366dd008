package repository

import (
	"context"
	"sort"
	"sync"

	"steward/socialhub/internal/model"
)

type contentKey struct {
	platform   string
	externalID string
}

type memoryContentRepository struct {
	mu    sync.RWMutex
	items map[contentKey]model.IngestedContent
}

func NewMemoryContentRepository() ContentRepository {
	return &memoryContentRepository{items: make(map[contentKey]model.IngestedContent)}
}

func (r *memoryContentRepository) Upsert(_ context.Context, item *model.IngestedContent) error {
	key := contentKey{platform: item.Platform, externalID: item.ExternalID}
	stored := *item
	stored.Payload = item.Payload.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[key]; ok && stored.OrganizationID == nil {
		stored.OrganizationID = existing.OrganizationID
	}
	r.items[key] = stored
	return nil
}

func (r *memoryContentRepository) List(_ context.Context, filter ContentFilter) ([]model.IngestedContent, error) {
	r.mu.RLock()
	out := make([]model.IngestedContent, 0, len(r.items))
	for _, item := range r.items {
		if filter.Platform != "" && item.Platform != filter.Platform {
			continue
		}
		if filter.OrganizationID != "" &&
			(item.OrganizationID == nil || *item.OrganizationID != filter.OrganizationID) {
			continue
		}
		item.Payload = item.Payload.Clone()
		out = append(out, item)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FetchedAt.Equal(out[j].FetchedAt) {
			return out[i].FetchedAt.After(out[j].FetchedAt)
		}
		if out[i].Platform != out[j].Platform {
			return out[i].Platform < out[j].Platform
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
