package session

import (
	"context"
	"sync"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"
)

type memoryEntry struct {
	session   model.Session
	expiresAt time.Time
}

// MemoryStore is an in-process Store used when Redis is unavailable
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a store whose entries expire ttl after their last save
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the stored session
func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, nil
	}

	s := cloneSession(entry.session)
	return &s, nil
}

// Save stores a copy of s and refreshes its expiry
func (m *MemoryStore) Save(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[s.ID] = memoryEntry{
		session:   cloneSession(*s),
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

// Delete removes a session; deleting an unknown id is not an error
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// cloneSession copies the filter slices so callers never share backing arrays
func cloneSession(s model.Session) model.Session {
	s.Filters = model.NewFilterState(s.Filters.Sectors, s.Filters.Industries, s.Filters.ClassificationTags)
	return s
}
