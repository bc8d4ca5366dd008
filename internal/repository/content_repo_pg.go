package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"steward/socialhub/internal/model"
)

type pgContentRepository struct {
	db *gorm.DB
}

func NewPGContentRepository(db *gorm.DB) ContentRepository {
	return &pgContentRepository{db: db}
}

func (r *pgContentRepository) Upsert(ctx context.Context, item *model.IngestedContent) error {
	updates := append(
		clause.AssignmentColumns([]string{"payload", "fetched_at"}),
		clause.Assignment{
			Column: clause.Column{Name: "organization_id"},
			Value:  gorm.Expr("COALESCE(excluded.organization_id, ingested_content.organization_id)"),
		},
	)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "external_id"}},
			DoUpdates: updates,
		}).
		Create(item).Error
	if err != nil {
		return persistenceError("upsert ingested content", err)
	}
	return nil
}

func (r *pgContentRepository) List(ctx context.Context, filter ContentFilter) ([]model.IngestedContent, error) {
	q := r.db.WithContext(ctx).Model(&model.IngestedContent{})
	if filter.OrganizationID != "" {
		q = q.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	q = q.Order("fetched_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var items []model.IngestedContent
	if err := q.Find(&items).Error; err != nil {
		return nil, persistenceError("list ingested content", err)
	}
	return items, nil
}
