package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"steward/socialhub/internal/model"
)

type pgStateStore struct {
	db *gorm.DB
}

var _ StatePurger = (*pgStateStore)(nil)

// NewPGStateStore is used in durable mode when no Redis is configured.
func NewPGStateStore(db *gorm.DB) StateStore {
	return &pgStateStore{db: db}
}

func (s *pgStateStore) Issue(ctx context.Context, state *model.CorrelationState) error {
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			UpdateAll: true,
		}).
		Create(state).Error
	if err != nil {
		return persistenceError("issue oauth state", err)
	}
	return nil
}

// Redeem relies on DELETE ... RETURNING so that only one caller can ever
// receive the row.
func (s *pgStateStore) Redeem(ctx context.Context, token string) (*model.CorrelationState, error) {
	var rows []model.CorrelationState
	err := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("token = ?", token).
		Delete(&rows).Error
	if err != nil {
		return nil, persistenceError("redeem oauth state", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return liveState(&rows[0], time.Now()), nil
}

// PurgeExpired deletes rows that expired before the given time and were
// never redeemed.
func (s *pgStateStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.CorrelationState{})
	if res.Error != nil {
		return 0, persistenceError("purge oauth states", res.Error)
	}
	return res.RowsAffected, nil
}
