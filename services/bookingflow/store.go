package bookingflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// StateStore keeps at most one ConversationState per session id.
// A missing entry means the session is Idle.
type StateStore interface {
	Get(ctx context.Context, sessionID string) (ConversationState, bool, error)
	Set(ctx context.Context, sessionID string, state ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	state     ConversationState
	touchedAt time.Time
}

// MemoryStore is a process-lifetime StateStore. Entries untouched for longer
// than ttl read as missing and are swept out by later writes; a zero ttl keeps
// them until deleted.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (ConversationState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return ConversationState{}, false, nil
	}
	if s.expired(e, s.now()) {
		delete(s.entries, sessionID)
		return ConversationState{}, false, nil
	}
	return e.state, true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, state ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[sessionID] = memoryEntry{state: state, touchedAt: now}
	// At most one full sweep per ttl keeps writes cheap.
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweepLocked(now)
		s.lastSweep = now
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Len returns the number of live flows.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e, now) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touchedAt) > s.ttl
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
}

const bookingStatePrefix = "booking:state:"

// RedisStore keeps flows in Redis as JSON so several API replicas share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (ConversationState, bool, error) {
	data, err := s.client.Get(ctx, bookingStatePrefix+sessionID).Bytes()
	if err == redis.Nil {
		return ConversationState{}, false, nil
	}
	if err != nil {
		return ConversationState{}, false, fmt.Errorf("load booking state: %w", err)
	}
	var state ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return ConversationState{}, false, fmt.Errorf("decode booking state: %w", err)
	}
	return state, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, state ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode booking state: %w", err)
	}
	if err := s.client.Set(ctx, bookingStatePrefix+sessionID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save booking state: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, bookingStatePrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("clear booking state: %w", err)
	}
	return nil
}
