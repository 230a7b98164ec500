package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback backend used when the shared cache
// is unreachable at startup. Sessions are scoped to the server instance and
// lost on restart; that is acceptable, chat simply starts empty.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	payload  []byte
	deadline time.Time
}

// MemoryStoreOption customizes MemoryStore.
type MemoryStoreOption func(*MemoryStore)

func WithMemoryTTL(ttl time.Duration) MemoryStoreOption {
	return func(m *MemoryStore) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock overrides the time source. Tests use it to force expiry.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	if m.now().After(entry.deadline) {
		delete(m.entries, sessionID)
		return nil, ErrStateNotFound
	}

	var st State
	if err := json.Unmarshal(entry.payload, &st); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &st, nil
}

func (m *MemoryStore) Save(_ context.Context, st *State) error {
	if st == nil {
		return ErrNilState
	}
	if st.SessionID == "" {
		return ErrInvalidSession
	}

	// Serialized on write so callers get value semantics, same as the
	// cache-backed store.
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[st.SessionID] = memoryEntry{
		payload:  payload,
		deadline: now.Add(m.ttl),
	}
	m.sweepLocked(now)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, entry := range m.entries {
		if now.After(entry.deadline) {
			delete(m.entries, id)
		}
	}
}
