package repository

import (
	"context"

	"steward/socialhub/internal/model"
)

type BrandRepository interface {
	Save(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id string) (*model.Brand, error)
}
