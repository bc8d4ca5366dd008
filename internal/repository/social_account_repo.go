package repository

import (
	"context"

	"steward/socialhub/internal/model"
)

type SocialAccountRepository interface {
	// Upsert replaces the whole record keyed by ID. CreatedAt of an existing
	// row is kept; UpdatedAt is stamped with the current time.
	Upsert(ctx context.Context, account *model.SocialAccount) error
	GetByID(ctx context.Context, id string) (*model.SocialAccount, error)
	// ListEligible returns accounts on platform with a non-empty access token
	// that is non-expiring or expires after the moment of the call.
	ListEligible(ctx context.Context, platform string) ([]model.EligibleAccount, error)
}
