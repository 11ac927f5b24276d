package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// --- Mocks ---

type mockBackend struct {
	err error
}

func (m *mockBackend) Health(_ context.Context) (*backend.HealthStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &backend.HealthStatus{Status: "healthy"}, nil
}

type mockSessionPinger struct {
	err error
}

func (m *mockSessionPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockBackend{}, &mockSessionPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["backend"] != CheckOK {
		t.Errorf("expected backend %q, got %q", CheckOK, r.Checks["backend"])
	}
	if r.Checks["sessions"] != CheckOK {
		t.Errorf("expected sessions %q, got %q", CheckOK, r.Checks["sessions"])
	}
}

func TestCheck_BackendError(t *testing.T) {
	svc := New(&mockBackend{err: errors.New("conn refused")}, &mockSessionPinger{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["backend"] != CheckError {
		t.Errorf("expected backend %q, got %q", CheckError, r.Checks["backend"])
	}
	if r.Checks["sessions"] != CheckOK {
		t.Errorf("expected sessions %q, got %q", CheckOK, r.Checks["sessions"])
	}
}

func TestCheck_SessionError(t *testing.T) {
	svc := New(&mockBackend{}, &mockSessionPinger{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["sessions"] != CheckError {
		t.Errorf("expected sessions %q, got %q", CheckError, r.Checks["sessions"])
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(
		&mockBackend{err: errors.New("backend down")},
		&mockSessionPinger{err: errors.New("valkey down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["backend"] != CheckError || r.Checks["sessions"] != CheckError {
		t.Errorf("expected both checks to fail: %v", r.Checks)
	}
}

func TestCheck_NoSessions(t *testing.T) {
	svc := New(&mockBackend{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["sessions"]; ok {
		t.Error("sessions check should be absent when sessions is nil")
	}
}
