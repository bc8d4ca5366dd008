package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"steward/socialhub/internal/model"
)

const (
	stateKeyPrefix = "oauth_state:"
	// stateExpiryGrace keeps a key slightly past expires_at so that a late
	// redeem still consumes it and reports it as expired.
	stateExpiryGrace = time.Minute
)

type redisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) StateStore {
	return &redisStateStore{client: client}
}

func (s *redisStateStore) Issue(ctx context.Context, state *model.CorrelationState) error {
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
	// expires_at is encoded as RFC 3339 by encoding/json.
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	ttl := time.Until(state.ExpiresAt) + stateExpiryGrace
	if ttl < stateExpiryGrace {
		ttl = stateExpiryGrace
	}
	if err := s.client.Set(ctx, stateKeyPrefix+state.Token, data, ttl).Err(); err != nil {
		return persistenceError("issue oauth state", err)
	}
	return nil
}

func (s *redisStateStore) Redeem(ctx context.Context, token string) (*model.CorrelationState, error) {
	data, err := s.client.GetDel(ctx, stateKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("redeem oauth state", err)
	}

	var state model.CorrelationState
	if err := json.Unmarshal(data, &state); err != nil {
		// Already deleted; a corrupt record is as good as absent.
		return nil, nil
	}
	return liveState(&state, time.Now()), nil
}
