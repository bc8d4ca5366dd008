package repository

import (
	"context"
	"time"

	"steward/socialhub/internal/model"
)

// StateStore keeps single-use OAuth correlation state.
// Implementations: Redis or Postgres (durable) and in-memory (fallback).
type StateStore interface {
	Issue(ctx context.Context, state *model.CorrelationState) error
	// Redeem reads and deletes the state for token in one atomic step. It
	// returns nil without error when the token is unknown, already redeemed,
	// or expired; an expired record is deleted all the same.
	Redeem(ctx context.Context, token string) (*model.CorrelationState, error)
}

// StatePurger is implemented by backends that keep expired records until
// they are redeemed or purged. Redis expires keys by itself and has none.
type StatePurger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// liveState drops a consumed record that turned out to be expired.
func liveState(state *model.CorrelationState, now time.Time) *model.CorrelationState {
	if state == nil || state.ExpiredAt(now) {
		return nil
	}
	return state
}
