package service

import (
	"context"
	"fmt"
	"time"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
	"steward/socialhub/pkg/crypto"
)

const defaultStateTTL = 10 * time.Minute

// OAuthStateService issues and redeems the correlation token that travels
// through a provider redirect.
type OAuthStateService interface {
	Start(ctx context.Context, subjectID, purpose, provider string) (*model.CorrelationState, error)
	// Complete consumes token. The record is gone afterwards even when the
	// callback names a different provider or purpose.
	Complete(ctx context.Context, token, provider, purpose string) (*model.CorrelationState, error)
}

type oauthStateService struct {
	store repository.StateStore
	ttl   time.Duration
}

var _ OAuthStateService = (*oauthStateService)(nil)

func NewOAuthStateService(store repository.StateStore, ttl time.Duration) OAuthStateService {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &oauthStateService{store: store, ttl: ttl}
}

func (s *oauthStateService) Start(ctx context.Context, subjectID, purpose, provider string) (*model.CorrelationState, error) {
	if purpose == "" || provider == "" {
		return nil, ErrInvalidState
	}

	token, err := crypto.GenerateStateToken()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	now := time.Now().UTC()
	state := &model.CorrelationState{
		Token:     token,
		SubjectID: subjectID,
		Purpose:   purpose,
		Provider:  provider,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Issue(ctx, state); err != nil {
		return nil, fmt.Errorf("issue state: %w", err)
	}
	return state, nil
}

func (s *oauthStateService) Complete(ctx context.Context, token, provider, purpose string) (*model.CorrelationState, error) {
	if token == "" {
		return nil, ErrStateInvalid
	}

	state, err := s.store.Redeem(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("redeem state: %w", err)
	}
	if state == nil {
		return nil, ErrStateInvalid
	}

	if (provider != "" && provider != state.Provider) || (purpose != "" && purpose != state.Purpose) {
		return nil, ErrStateMismatch
	}
	return state, nil
}
