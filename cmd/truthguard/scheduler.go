// cmd/truthguard/scheduler.go
package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// StartScheduler wires the background jobs: nightly retention cleanup of
// persisted fact checks and a periodic metrics snapshot. Returns the running
// cron so main can stop it on shutdown.
func StartScheduler(cfg *Config, store *Store) *cron.Cron {
	c := cron.New()

	if store != nil {
		_, err := c.AddFunc(cfg.CleanupCron, func() {
			retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
			removed, err := store.CleanupOldData(context.Background(), retention)
			if err != nil {
				RecordError("cleanup", err)
				return
			}
			if removed > 0 {
				GetLogger().Info("Retention cleanup removed %d fact checks", removed)
			}
		})
		if err != nil {
			GetLogger().Warning("Failed to schedule retention cleanup: %v", err)
		}
	}

	_, err := c.AddFunc("@every 1m", func() {
		metrics := collectMetrics()
		GetLogger().Debug("Metrics: %.1fMB heap, %d goroutines, %.1f%% cpu",
			metrics.MemoryUsageMB, metrics.GoroutineCount, metrics.CPUUsagePercent)
	})
	if err != nil {
		GetLogger().Warning("Failed to schedule metrics snapshot: %v", err)
	}

	c.Start()
	return c
}
