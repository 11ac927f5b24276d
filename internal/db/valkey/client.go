package valkey

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lingodesk/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	defaultClientName  = "lingodesk-sessions"
	defaultDialTimeout = 5 * time.Second
	readyPollInterval  = 100 * time.Millisecond
)

// Config selects the Valkey deployment that holds browser sessions.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// ClientName shows up in CLIENT LIST. Empty means "lingodesk-sessions".
	ClientName string
	// DialTimeout bounds each connection attempt. Zero means 5s.
	DialTimeout time.Duration
}

// Store keeps session state and control locks in Valkey.
type Store struct {
	client rueidis.Client
}

// NewStore connects to the session Valkey. Sessions are written and read by
// one request at a time, so client-side caching stays off.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("valkey: at least one session store address is required")
	}
	name := cfg.ClientName
	if name == "" {
		name = defaultClientName
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   name,
		Dialer:       net.Dialer{Timeout: dial},
		DisableCache: true,
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	return newStore(client), nil
}

func newStore(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings until the session store answers. The last ping error is
// returned when timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		err := s.Ping(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return &db.Error{Op: db.OpPing, Err: errors.Join(ctx.Err(), err)}
		case <-ticker.C:
		}
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}
