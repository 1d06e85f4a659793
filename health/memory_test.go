package health

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
)

func TestNewMemoryChecker_Thresholds(t *testing.T) {
	tests := []struct {
		name         string
		config       MemoryCheckerConfig
		warn, critic float64
	}{
		{"defaults", MemoryCheckerConfig{}, 0.8, 0.95},
		{"custom", MemoryCheckerConfig{WarningThreshold: 0.7, CriticalThreshold: 0.9}, 0.7, 0.9},
		{"invalid warning", MemoryCheckerConfig{WarningThreshold: 1.5}, 0.8, 0.95},
		{"critical below warning", MemoryCheckerConfig{WarningThreshold: 0.9, CriticalThreshold: 0.7}, 0.9, 0.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemoryChecker(tt.config)
			if c.config.WarningThreshold != tt.warn || c.config.CriticalThreshold != tt.critic {
				t.Errorf("thresholds = %v/%v, want %v/%v",
					c.config.WarningThreshold, c.config.CriticalThreshold, tt.warn, tt.critic)
			}
		})
	}
}

func fakeMemory(c *MemoryChecker, heap uint64, vm *mem.VirtualMemoryStat, err error) {
	c.readHeap = func() uint64 { return heap }
	c.readSystem = func(context.Context) (*mem.VirtualMemoryStat, error) { return vm, err }
}

func TestMemoryChecker_Check(t *testing.T) {
	tests := []struct {
		name     string
		maxAlloc uint64
		heap     uint64
		vm       *mem.VirtualMemoryStat
		want     Status
	}{
		{"normal", 0, 100, &mem.VirtualMemoryStat{Total: 1000, UsedPercent: 40}, StatusHealthy},
		{"system pressure", 0, 100, &mem.VirtualMemoryStat{Total: 1000, UsedPercent: 85}, StatusDegraded},
		{"heap over budget", 200, 195, &mem.VirtualMemoryStat{Total: 1000, UsedPercent: 10}, StatusUnhealthy},
		{"heap high", 200, 170, &mem.VirtualMemoryStat{Total: 1000, UsedPercent: 10}, StatusDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemoryChecker(MemoryCheckerConfig{MaxAlloc: tt.maxAlloc})
			fakeMemory(c, tt.heap, tt.vm, nil)
			r := c.Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v (%s), want %v", r.Status, r.Message, tt.want)
			}
			if r.Details["heap_bytes"] != tt.heap {
				t.Errorf("heap_bytes = %v, want %d", r.Details["heap_bytes"], tt.heap)
			}
		})
	}
}

func TestMemoryChecker_SystemUnavailable(t *testing.T) {
	c := NewMemoryChecker(MemoryCheckerConfig{})
	fakeMemory(c, 1, nil, errors.New("no /proc"))
	if r := c.Check(context.Background()); r.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", r.Status)
	}
}

func TestMemoryChecker_Live(t *testing.T) {
	c := NewMemoryChecker(MemoryCheckerConfig{})
	if c.Name() != "memory" {
		t.Errorf("Name() = %q", c.Name())
	}
	r := c.Check(context.Background())
	if r.Message == "" {
		t.Error("Message is empty")
	}
}
