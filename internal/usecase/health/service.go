package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all checks pass.
	Healthy Status = "ok"
	// Degraded indicates an optional check failed.
	Degraded Status = "degraded"
	// Unhealthy indicates the geometry core returns wrong answers.
	Unhealthy Status = "error"
)

// CheckResult represents an individual health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const geometryCheck = "geometry"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Uptime time.Duration
}

type namedCheck struct {
	name     string
	checker  SelfChecker
	required bool
}

// Service coordinates health checks.
type Service struct {
	checks  []namedCheck
	started time.Time
}

// New creates a Service that always checks the geometry core.
func New(geometry SelfChecker) *Service {
	return &Service{
		checks:  []namedCheck{{name: geometryCheck, checker: geometry, required: true}},
		started: time.Now(),
	}
}

// AddOptional registers a check whose failure only degrades the report.
func (s *Service) AddOptional(name string, c SelfChecker) {
	s.checks = append(s.checks, namedCheck{name: name, checker: c})
}

// Check runs every registered check.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, c := range s.checks {
		if err := c.checker.SelfCheck(ctx); err != nil {
			checks[c.name] = CheckError
			if c.required {
				status = Unhealthy
			} else if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[c.name] = CheckOK
	}

	return Report{Status: status, Checks: checks, Uptime: time.Since(s.started)}
}
