package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"steward/socialhub/internal/model"
)

// socialAccountColumns are overwritten on conflict; created_at is not.
var socialAccountColumns = []string{
	"organization_id", "brand_id", "platform", "external_account_id",
	"access_token", "refresh_token", "token_expires_at", "status",
	"is_connected", "username", "display_name", "avatar_url",
	"last_sync_at", "follower_count", "updated_at",
}

type pgSocialAccountRepository struct {
	db *gorm.DB
}

func NewPGSocialAccountRepository(db *gorm.DB) SocialAccountRepository {
	return &pgSocialAccountRepository{db: db}
}

func (r *pgSocialAccountRepository) Upsert(ctx context.Context, account *model.SocialAccount) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	// RETURNING created_at reports the original creation time of a replaced row.
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(socialAccountColumns),
			},
			clause.Returning{Columns: []clause.Column{{Name: "created_at"}}},
		).
		Create(account).Error
	if err != nil {
		return persistenceError("upsert social account", err)
	}
	return nil
}

func (r *pgSocialAccountRepository) GetByID(ctx context.Context, id string) (*model.SocialAccount, error) {
	var account model.SocialAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get social account", err)
	}
	return &account, nil
}

func (r *pgSocialAccountRepository) ListEligible(ctx context.Context, platform string) ([]model.EligibleAccount, error) {
	var accounts []model.EligibleAccount
	err := r.db.WithContext(ctx).
		Model(&model.SocialAccount{}).
		Select("id", "organization_id", "external_account_id", "access_token").
		Where("platform = ? AND access_token <> '' AND (token_expires_at IS NULL OR token_expires_at > ?)",
			platform, time.Now().UTC()).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, persistenceError("list eligible social accounts", err)
	}
	return accounts, nil
}
