package valkey

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lingodesk/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.b().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// SetNX stores a value with an expiration only if the key is absent (SET NX EX).
// A nil reply means the key already existed.
func (s *Store) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	cmd := s.b().Set().Key(key).Value(string(value)).Nx().Ex(ttl).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpSet, Err: err}
	}
	return true, nil
}

// Del removes a key. Removing a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
