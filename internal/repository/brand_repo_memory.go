package repository

import (
	"context"
	"sync"
	"time"

	"steward/socialhub/internal/model"
)

type memoryBrandRepository struct {
	mu     sync.RWMutex
	brands map[string]model.Brand
}

func NewMemoryBrandRepository() BrandRepository {
	return &memoryBrandRepository{brands: make(map[string]model.Brand)}
}

func (r *memoryBrandRepository) Save(_ context.Context, brand *model.Brand) error {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.brands[brand.ID]; ok {
		brand.CreatedAt = existing.CreatedAt
	} else if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now
	r.brands[brand.ID] = *brand
	return nil
}

func (r *memoryBrandRepository) GetByID(_ context.Context, id string) (*model.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brand, ok := r.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &brand, nil
}
