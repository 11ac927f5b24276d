package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the backend is up but a local dependency is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the backend is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	backend  BackendChecker
	sessions SessionPinger
}

// New creates a Service. sessions can be nil.
func New(backend BackendChecker, sessions SessionPinger) *Service {
	return &Service{backend: backend, sessions: sessions}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	status := Healthy
	if _, err := s.backend.Health(ctx); err != nil {
		checks["backend"] = CheckError
		status = Unhealthy
	} else {
		checks["backend"] = CheckOK
	}

	if s.sessions != nil {
		if err := s.sessions.Ping(ctx); err != nil {
			checks["sessions"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["sessions"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
