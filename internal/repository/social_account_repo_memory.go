package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"steward/socialhub/internal/model"
)

type memorySocialAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]model.SocialAccount
}

func NewMemorySocialAccountRepository() SocialAccountRepository {
	return &memorySocialAccountRepository{
		accounts: make(map[string]model.SocialAccount),
	}
}

func (r *memorySocialAccountRepository) Upsert(_ context.Context, account *model.SocialAccount) error {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.accounts[account.ID]; ok {
		account.CreatedAt = existing.CreatedAt
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	r.accounts[account.ID] = *account
	return nil
}

func (r *memorySocialAccountRepository) GetByID(_ context.Context, id string) (*model.SocialAccount, error) {
	r.mu.RLock()
	account, ok := r.accounts[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *memorySocialAccountRepository) ListEligible(_ context.Context, platform string) ([]model.EligibleAccount, error) {
	now := time.Now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.EligibleAccount
	for _, account := range r.accounts {
		if account.Platform != platform || !account.EligibleAt(now) {
			continue
		}
		out = append(out, model.EligibleAccount{
			ID:                account.ID,
			OrganizationID:    account.OrganizationID,
			ExternalAccountID: account.ExternalAccountID,
			AccessToken:       account.AccessToken,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
