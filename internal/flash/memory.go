package flash

import (
	"context"
	"sync"
	"time"

	"url-shortener-console/internal/view"
)

type entry struct {
	notices []view.Notice
	expires time.Time
}

// MemoryStore is a process-local Store, suitable for a single console
// instance
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewMemoryStore creates an in-memory store whose notices expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

func (s *MemoryStore) Push(_ context.Context, sid string, notices ...view.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.entries[sid]
	if !ok {
		e = &entry{}
		s.entries[sid] = e
	}
	e.notices = append(e.notices, notices...)
	e.expires = now.Add(s.ttl)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sid string) ([]view.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return nil, nil
	}
	delete(s.entries, sid)

	if s.now().After(e.expires) {
		return nil, nil
	}
	return e.notices, nil
}

// sweep drops expired sessions; callers hold mu
func (s *MemoryStore) sweep(now time.Time) {
	for sid, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, sid)
		}
	}
}
