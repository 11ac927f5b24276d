package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/lingodesk/internal/db"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/metrics"
)

// store is the consumer interface for session operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

// Config holds key layout and expiry settings.
type Config struct {
	Driver    string // metrics label only
	KeyPrefix string
	TTL       time.Duration
	LockTTL   time.Duration
}

// Repo keeps per-browser form state and control locks.
//
// Keys:
//
//	{prefix}session:{sid}:state           form.State JSON, TTL = session TTL
//	{prefix}session:{sid}:lock:{control}  "1", TTL = lock TTL
type Repo struct {
	store store
	cfg   Config
}

// New creates a session repository.
func New(s store, cfg Config) *Repo {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	if cfg.Driver == "" {
		cfg.Driver = "unknown"
	}
	return &Repo{store: s, cfg: cfg}
}

// LoadState returns the form state of a session. Unknown or expired sessions
// start in create mode.
func (r *Repo) LoadState(ctx context.Context, sid string) (form.State, error) {
	data, err := r.store.Get(ctx, r.stateKey(sid))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			r.observe("load", nil)
			return form.Create(), nil
		}
		r.observe("load", err)
		return form.Create(), fmt.Errorf("session GET %s: %w", sid, err)
	}

	var st form.State
	if err := json.Unmarshal(data, &st); err != nil {
		r.observe("load", err)
		return form.Create(), fmt.Errorf("session %s decode: %w", sid, err)
	}
	r.observe("load", nil)
	return st, nil
}

// SaveState stores the form state and refreshes the session TTL.
func (r *Repo) SaveState(ctx context.Context, sid string, st form.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session %s encode: %w", sid, err)
	}
	err = r.store.SetWithTTL(ctx, r.stateKey(sid), data, r.cfg.TTL)
	r.observe("save", err)
	if err != nil {
		return fmt.Errorf("session SET %s: %w", sid, err)
	}
	return nil
}

// Acquire disables a control for the session. It reports false when the
// control is already disabled by an in-flight request.
func (r *Repo) Acquire(ctx context.Context, sid, control string) (bool, error) {
	ok, err := r.store.SetNX(ctx, r.lockKey(sid, control), []byte("1"), r.cfg.LockTTL)
	r.observe("acquire", err)
	if err != nil {
		return false, fmt.Errorf("session lock %s/%s: %w", sid, control, err)
	}
	return ok, nil
}

// Release re-enables a control.
func (r *Repo) Release(ctx context.Context, sid, control string) error {
	err := r.store.Del(ctx, r.lockKey(sid, control))
	r.observe("release", err)
	if err != nil {
		return fmt.Errorf("session unlock %s/%s: %w", sid, control, err)
	}
	return nil
}

func (r *Repo) stateKey(sid string) string {
	return r.cfg.KeyPrefix + "session:" + sid + ":state"
}

func (r *Repo) lockKey(sid, control string) string {
	return r.cfg.KeyPrefix + "session:" + sid + ":lock:" + control
}

func (r *Repo) observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SessionOpsTotal.WithLabelValues(r.cfg.Driver, op, status).Inc()
}
