package health

import (
	"context"
	"errors"
	"testing"
)

func TestNewTableChecker_Defaults(t *testing.T) {
	c := NewTableChecker("Beauty", func() int { return 0 }, TableCheckerConfig{})
	if c.config.Warning != 50000 || c.config.Critical != 200000 {
		t.Errorf("config = %+v, want 50000/200000", c.config)
	}
	c = NewTableChecker("Beauty", func() int { return 0 }, TableCheckerConfig{Warning: 10, Critical: 5})
	if c.config.Critical != 40 {
		t.Errorf("Critical = %d, want 40", c.config.Critical)
	}
}

func TestTableChecker_Check(t *testing.T) {
	n := 0
	c := NewTableChecker("Beauty", func() int { return n }, TableCheckerConfig{Warning: 10, Critical: 20})
	if c.Name() != "Beauty" {
		t.Errorf("Name() = %q", c.Name())
	}

	tests := []struct {
		entries int
		want    Status
	}{
		{0, StatusHealthy},
		{9, StatusHealthy},
		{10, StatusDegraded},
		{19, StatusDegraded},
		{20, StatusUnhealthy},
	}
	for _, tt := range tests {
		n = tt.entries
		r := c.Check(context.Background())
		if r.Status != tt.want {
			t.Errorf("entries=%d: Status = %v, want %v", tt.entries, r.Status, tt.want)
		}
		if r.Details["entries"] != tt.entries {
			t.Errorf("entries=%d: Details = %v", tt.entries, r.Details)
		}
	}
	n = 25
	if r := c.Check(context.Background()); !errors.Is(r.Error, ErrCheckFailed) {
		t.Errorf("critical Error = %v, want ErrCheckFailed", r.Error)
	}
}

func TestTableChecker_CancelledContext(t *testing.T) {
	c := NewTableChecker("Beauty", func() int { return 0 }, TableCheckerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if r := c.Check(ctx); r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", r.Status)
	}
}
