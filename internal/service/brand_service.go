package service

import (
	"context"
	"errors"
	"fmt"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
)

type BrandService interface {
	Save(ctx context.Context, brand *model.Brand) error
	Get(ctx context.Context, id string) (*model.Brand, error)
}

type brandService struct {
	brands repository.BrandRepository
}

var _ BrandService = (*brandService)(nil)

func NewBrandService(brands repository.BrandRepository) BrandService {
	return &brandService{brands: brands}
}

func (s *brandService) Save(ctx context.Context, brand *model.Brand) error {
	if brand == nil || brand.ID == "" || brand.OrganizationID == "" {
		return ErrInvalidBrand
	}
	if err := s.brands.Save(ctx, brand); err != nil {
		return fmt.Errorf("save brand: %w", err)
	}
	return nil
}

func (s *brandService) Get(ctx context.Context, id string) (*model.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return brand, nil
}
