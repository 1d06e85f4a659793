package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStatus_Worse(t *testing.T) {
	if got := StatusHealthy.Worse(StatusDegraded); got != StatusDegraded {
		t.Errorf("Healthy.Worse(Degraded) = %v", got)
	}
	if got := StatusUnhealthy.Worse(StatusDegraded); got != StatusUnhealthy {
		t.Errorf("Unhealthy.Worse(Degraded) = %v", got)
	}
}

func TestResultConstructors(t *testing.T) {
	err := errors.New("down")
	r := Unhealthy("table full", err).WithDetails(map[string]any{"entries": 9})
	if r.Status != StatusUnhealthy || r.Error != err || r.Details["entries"] != 9 {
		t.Errorf("Unhealthy() = %+v", r)
	}
	if r.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if Healthy("ok").Status != StatusHealthy || Degraded("slow").Status != StatusDegraded {
		t.Error("constructor status mismatch")
	}
}

func TestResult_WithDetailsMerges(t *testing.T) {
	base := Healthy("ok").WithDetails(map[string]any{"entries": 1, "warning": 50})
	r := base.WithDetails(map[string]any{"entries": 2})
	if r.Details["entries"] != 2 || r.Details["warning"] != 50 {
		t.Errorf("Details = %v", r.Details)
	}
	if base.Details["entries"] != 1 {
		t.Error("WithDetails mutated the original result")
	}
}

func TestNamed(t *testing.T) {
	c := Named("ping", func(context.Context) Result { return Healthy("pong") })
	if c.Name() != "ping" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.Check(context.Background()); got.Message != "pong" {
		t.Errorf("Check().Message = %q", got.Message)
	}
}
