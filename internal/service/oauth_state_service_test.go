package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
)

type failingStateStore struct{ err error }

func (f failingStateStore) Issue(context.Context, *model.CorrelationState) error { return f.err }
func (f failingStateStore) Redeem(context.Context, string) (*model.CorrelationState, error) {
	return nil, f.err
}

func TestOAuthStateService_StartThenComplete(t *testing.T) {
	ctx := context.Background()
	svc := NewOAuthStateService(repository.NewMemoryStateStore(), 10*time.Minute)

	state, err := svc.Start(ctx, "user-1", "connect", "instagram")
	require.NoError(t, err)
	assert.Len(t, state.Token, 43)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), state.ExpiresAt, 5*time.Second)

	got, err := svc.Complete(ctx, state.Token, "instagram", "connect")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.SubjectID)

	_, err = svc.Complete(ctx, state.Token, "instagram", "connect")
	require.ErrorIs(t, err, ErrStateInvalid)
}

func TestOAuthStateService_StartRequiresProviderAndPurpose(t *testing.T) {
	svc := NewOAuthStateService(repository.NewMemoryStateStore(), 0)

	_, err := svc.Start(context.Background(), "user-1", "", "instagram")
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Start(context.Background(), "user-1", "connect", "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestOAuthStateService_ExpiredState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStateStore()
	svc := NewOAuthStateService(store, time.Minute)

	require.NoError(t, store.Issue(ctx, &model.CorrelationState{
		Token:     "c1",
		Purpose:   "connect",
		Provider:  "instagram",
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	_, err := svc.Complete(ctx, "c1", "instagram", "connect")
	require.ErrorIs(t, err, ErrStateInvalid)
}

func TestOAuthStateService_MismatchConsumesState(t *testing.T) {
	ctx := context.Background()
	svc := NewOAuthStateService(repository.NewMemoryStateStore(), time.Minute)

	state, err := svc.Start(ctx, "user-1", "connect", "instagram")
	require.NoError(t, err)

	_, err = svc.Complete(ctx, state.Token, "tiktok", "connect")
	require.ErrorIs(t, err, ErrStateMismatch)

	_, err = svc.Complete(ctx, state.Token, "instagram", "connect")
	require.ErrorIs(t, err, ErrStateInvalid)
}

func TestOAuthStateService_BackendFailure(t *testing.T) {
	backendErr := fmt.Errorf("issue state: %w", repository.ErrPersistence)
	svc := NewOAuthStateService(failingStateStore{err: backendErr}, time.Minute)

	_, err := svc.Start(context.Background(), "user-1", "connect", "instagram")
	require.ErrorIs(t, err, repository.ErrPersistence)

	_, err = svc.Complete(context.Background(), "tok", "instagram", "connect")
	require.ErrorIs(t, err, repository.ErrPersistence)
	assert.False(t, errors.Is(err, ErrStateInvalid))
}
