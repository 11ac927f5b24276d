package health

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// BackendChecker checks backend API availability.
type BackendChecker interface {
	Health(ctx context.Context) (*backend.HealthStatus, error)
}

// SessionPinger checks session store availability.
type SessionPinger interface {
	Ping(ctx context.Context) error
}
