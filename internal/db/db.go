package db

import (
	"context"
	"time"
)

// Store is the key-value facade used for web sessions.
type Store interface {
	Pinger
	KVStore
	Locker
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Locker provides set-if-absent for short-lived locks.
type Locker interface {
	// SetNX stores value only if key does not exist. Reports whether it was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}
