package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"steward/socialhub/internal/model"
)

type pgBrandRepository struct {
	db *gorm.DB
}

func NewPGBrandRepository(db *gorm.DB) BrandRepository {
	return &pgBrandRepository{db: db}
}

func (r *pgBrandRepository) Save(ctx context.Context, brand *model.Brand) error {
	now := time.Now().UTC()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"organization_id", "name", "updated_at"}),
		}).
		Create(brand).Error
	if err != nil {
		return persistenceError("save brand", err)
	}
	return nil
}

func (r *pgBrandRepository) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get brand", err)
	}
	return &brand, nil
}
