package repository

import (
	"context"
	"sync"
	"time"

	"steward/socialhub/internal/model"
)

// memStateEntry keeps timestamps as epoch milliseconds.
type memStateEntry struct {
	subjectID   string
	purpose     string
	provider    string
	expiresAtMs int64
	createdAtMs int64
}

type memoryStateStore struct {
	mu      sync.Mutex
	entries map[string]memStateEntry
}

var _ StatePurger = (*memoryStateStore)(nil)

func NewMemoryStateStore() StateStore {
	return &memoryStateStore{
		entries: make(map[string]memStateEntry),
	}
}

// Issue sweeps every expired entry before storing, inside the same critical
// section. There is no background cleanup.
func (s *memoryStateStore) Issue(_ context.Context, state *model.CorrelationState) error {
	nowMs := time.Now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(nowMs)

	createdAt := state.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.UnixMilli(nowMs)
	}
	s.entries[state.Token] = memStateEntry{
		subjectID:   state.SubjectID,
		purpose:     state.Purpose,
		provider:    state.Provider,
		expiresAtMs: state.ExpiresAt.UnixMilli(),
		createdAtMs: createdAt.UnixMilli(),
	}
	return nil
}

func (s *memoryStateStore) Redeem(_ context.Context, token string) (*model.CorrelationState, error) {
	s.mu.Lock()
	entry, ok := s.entries[token]
	delete(s.entries, token)
	s.mu.Unlock()

	if !ok || time.Now().UnixMilli() > entry.expiresAtMs {
		return nil, nil
	}
	return &model.CorrelationState{
		Token:     token,
		SubjectID: entry.subjectID,
		Purpose:   entry.purpose,
		Provider:  entry.provider,
		ExpiresAt: time.UnixMilli(entry.expiresAtMs),
		CreatedAt: time.UnixMilli(entry.createdAtMs),
	}, nil
}

func (s *memoryStateStore) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(before.UnixMilli()), nil
}

// sweepLocked drops entries expired at nowMs. Callers hold s.mu.
func (s *memoryStateStore) sweepLocked(nowMs int64) int64 {
	var n int64
	for token, entry := range s.entries {
		if nowMs > entry.expiresAtMs {
			delete(s.entries, token)
			n++
		}
	}
	return n
}

func (s *memoryStateStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
