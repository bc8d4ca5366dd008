package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/socialhub/internal/model"
)

func TestMemorySocialAccountRepository_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySocialAccountRepository()

	account := model.SocialAccount{
		ID:                "c1",
		OrganizationID:    "org-A",
		Platform:          "instagram",
		ExternalAccountID: "ig-1",
		AccessToken:       "tok",
		Status:            model.AccountStatusActive,
		IsConnected:       true,
	}
	first := account
	require.NoError(t, repo.Upsert(ctx, &first))
	time.Sleep(2 * time.Millisecond)
	second := account
	require.NoError(t, repo.Upsert(ctx, &second))

	stored, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(first.UpdatedAt))

	eligible, err := repo.ListEligible(ctx, "instagram")
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "c1", eligible[0].ID)
}

func TestMemorySocialAccountRepository_UpsertReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySocialAccountRepository()

	require.NoError(t, repo.Upsert(ctx, &model.SocialAccount{
		ID: "c1", OrganizationID: "org-A", Platform: "instagram",
		AccessToken: "tok", Username: "first", DisplayName: "First",
	}))
	require.NoError(t, repo.Upsert(ctx, &model.SocialAccount{
		ID: "c1", OrganizationID: "org-A", Platform: "instagram",
		AccessToken: "tok2",
	}))

	stored, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "tok2", stored.AccessToken)
	assert.Empty(t, stored.Username)
	assert.Empty(t, stored.DisplayName)
}

func TestMemorySocialAccountRepository_GetMissing(t *testing.T) {
	_, err := NewMemorySocialAccountRepository().GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySocialAccountRepository_ListEligible(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySocialAccountRepository()
	past := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Hour)

	accounts := []model.SocialAccount{
		{ID: "never-expires", Platform: "instagram", AccessToken: "a"},
		{ID: "future", Platform: "instagram", AccessToken: "b", TokenExpiresAt: &future},
		{ID: "expired", Platform: "instagram", AccessToken: "c", TokenExpiresAt: &past},
		{ID: "no-token", Platform: "instagram"},
		{ID: "other-platform", Platform: "tiktok", AccessToken: "d"},
	}
	for i := range accounts {
		require.NoError(t, repo.Upsert(ctx, &accounts[i]))
	}

	eligible, err := repo.ListEligible(ctx, "instagram")
	require.NoError(t, err)

	ids := make([]string, 0, len(eligible))
	for _, acct := range eligible {
		ids = append(ids, acct.ID)
	}
	assert.Equal(t, []string{"future", "never-expires"}, ids)
}

func TestMemorySocialAccountRepository_ShrinkingExpiryRemovesFromEligible(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySocialAccountRepository()
	future := time.Now().Add(time.Hour)

	require.NoError(t, repo.Upsert(ctx, &model.SocialAccount{
		ID: "c1", Platform: "instagram", AccessToken: "tok", TokenExpiresAt: &future,
	}))
	eligible, err := repo.ListEligible(ctx, "instagram")
	require.NoError(t, err)
	require.Len(t, eligible, 1)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, repo.Upsert(ctx, &model.SocialAccount{
		ID: "c1", Platform: "instagram", AccessToken: "tok", TokenExpiresAt: &past,
	}))
	eligible, err = repo.ListEligible(ctx, "instagram")
	require.NoError(t, err)
	assert.Empty(t, eligible)
}
