// cmd/truthguard/metrics.go
package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Metrics holds system and application metrics
type Metrics struct {
	Timestamp       time.Time `json:"timestamp"`
	MemoryUsageMB   float64   `json:"memory_usage_mb"`
	SystemMemoryPct float64   `json:"system_memory_percent"`
	CPUUsagePercent float64   `json:"cpu_usage_percent"`
	GoroutineCount  int       `json:"goroutine_count"`
	UptimeHours     float64   `json:"uptime_hours"`

	Counters map[string]int64 `json:"counters"`
}

var (
	countersMutex sync.Mutex
	counters      = make(map[string]int64)
	startTime     = time.Now()
)

// IncrementCounter bumps a named application counter.
func IncrementCounter(name string) {
	countersMutex.Lock()
	defer countersMutex.Unlock()
	counters[name]++
}

// counterSnapshot returns a copy of the current counters.
func counterSnapshot() map[string]int64 {
	countersMutex.Lock()
	defer countersMutex.Unlock()

	snapshot := make(map[string]int64, len(counters))
	for k, v := range counters {
		snapshot[k] = v
	}
	return snapshot
}

// collectMetrics gathers system and application metrics.
func collectMetrics() *Metrics {
	metrics := &Metrics{
		Timestamp:      time.Now(),
		GoroutineCount: runtime.NumGoroutine(),
		UptimeHours:    time.Since(startTime).Hours(),
		Counters:       counterSnapshot(),
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	metrics.MemoryUsageMB = float64(memStats.Alloc) / 1024 / 1024

	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.SystemMemoryPct = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.CPUUsagePercent = percents[0]
	}

	return metrics
}
