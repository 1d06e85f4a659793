package health

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// WarningThreshold is the usage ratio that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the usage ratio that triggers unhealthy status.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// MaxAlloc is the heap budget in bytes. If zero, total system memory is
	// used.
	MaxAlloc uint64
}

// MemoryChecker compares the process heap with its budget and reports
// system memory pressure. The worse of the two ratios decides the status.
type MemoryChecker struct {
	config     MemoryCheckerConfig
	readHeap   func() uint64
	readSystem func(context.Context) (*mem.VirtualMemoryStat, error)
}

// NewMemoryChecker creates a new memory health checker.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = min(config.WarningThreshold+0.1, 0.99)
	}

	return &MemoryChecker{
		config:     config,
		readHeap:   heapAlloc,
		readSystem: mem.VirtualMemoryWithContext,
	}
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc
}

// Name returns the name of this checker.
func (m *MemoryChecker) Name() string {
	return "memory"
}

// Check performs the memory health check.
func (m *MemoryChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	heap := m.readHeap()
	vm, err := m.readSystem(ctx)
	if err != nil {
		return Degraded(fmt.Sprintf("system memory unavailable: %v", err)).WithDetails(map[string]any{
			"heap_bytes": heap,
		})
	}

	budget := m.config.MaxAlloc
	if budget == 0 {
		budget = vm.Total
	}
	var heapRatio float64
	if budget > 0 {
		heapRatio = float64(heap) / float64(budget)
	}
	systemRatio := vm.UsedPercent / 100
	usage := max(heapRatio, systemRatio)

	details := map[string]any{
		"heap_bytes":          heap,
		"heap_budget":         budget,
		"heap_percent":        heapRatio * 100,
		"system_total":        vm.Total,
		"system_available":    vm.Available,
		"system_used_percent": vm.UsedPercent,
		"goroutines":          runtime.NumGoroutine(),
	}

	switch {
	case usage >= m.config.CriticalThreshold:
		return Unhealthy(fmt.Sprintf("memory usage critical: %.1f%%", usage*100), ErrCheckFailed).WithDetails(details)
	case usage >= m.config.WarningThreshold:
		return Degraded(fmt.Sprintf("memory usage high: %.1f%%", usage*100)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("memory usage normal: %.1f%%", usage*100)).WithDetails(details)
	}
}
