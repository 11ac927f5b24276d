package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/lingodesk/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// sweepEvery is the number of writes between expired-key sweeps.
const sweepEvery = 1024

type entry struct {
	value   []byte
	expires time.Time
}

// Store is an in-process db.Store for single-instance deployments and tests.
// Keys expire lazily on read and in periodic sweeps on write.
type Store struct {
	mu     sync.Mutex
	items  map[string]entry
	writes int
	now    func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{items: make(map[string]entry), now: time.Now}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close drops all keys.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(key, value, ttl)
	return nil
}

// SetNX stores a value only if the key is absent or expired.
func (s *Store) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.put(key, value, ttl)
	return true, nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// live returns the entry for key, deleting it if expired. Caller holds mu.
func (s *Store) live(key string) (entry, bool) {
	e, ok := s.items[key]
	if !ok {
		return entry{}, false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.items, key)
		return entry{}, false
	}
	return e, true
}

// put stores a copy of value. Caller holds mu.
func (s *Store) put(key string, value []byte, ttl time.Duration) {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.items[key] = e

	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweep()
	}
}

// sweep drops every expired key. Caller holds mu.
func (s *Store) sweep() {
	now := s.now()
	for k, e := range s.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.items, k)
		}
	}
}
