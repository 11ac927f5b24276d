package session

import (
	"context"
	"time"

	"github.com/kailas-cloud/lingodesk/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	lockErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if m.lockErr != nil {
		return false, m.lockErr
	}
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return true, nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
