package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/config"
	"codeberg.org/mutker/hostwatch/internal/logger"
	"codeberg.org/mutker/hostwatch/internal/telemetry"
)

const (
	monitorLogDir  = "logs"
	monitorLogPerm = 0o644
	monitorDirPerm = 0o755
)

func printOverview(o collector.Overview) {
	fmt.Printf("Uptime: %s\n", formatUptime(o.Uptime))
	fmt.Printf("Load Average: %.2f, %.2f, %.2f\n", o.Load.Load1, o.Load.Load5, o.Load.Load15)
	fmt.Println("Top 5 Memory Consuming Processes:")
	for _, p := range o.TopProcesses {
		fmt.Printf("%s\t%d\t%.1f\t%s\n", p.User, p.PID, p.MemoryPercent, p.Command)
	}
}

// appendMonitorLog keeps the dated host log: one line per run plus the
// top-processes table.
func appendMonitorLog(snap collector.Snapshot, o collector.Overview) error {
	if err := os.MkdirAll(monitorLogDir, monitorDirPerm); err != nil {
		return err
	}

	now := time.Now()
	path := filepath.Join(monitorLogDir, fmt.Sprintf("monitor_%s.log", now.Format("02-01-2006")))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, monitorLogPerm)
	if err != nil {
		return err
	}
	defer f.Close()

	ts := now.Format("2006/01/02 15:04:05")
	fmt.Fprintf(f, "[%s] CPU: %.2f | RAM: %.2f | Disc: %s | LoadAvg: %.2f, %.2f, %.2f | Up Time: %s\n",
		ts, snap.CPUUsagePercent, snap.MemoryUsagePercent, snap.DiskUsage,
		o.Load.Load1, o.Load.Load5, o.Load.Load15, formatUptime(o.Uptime))
	fmt.Fprintf(f, "[%s] Top 5 Memory Consuming Processes:\n", ts)
	for _, p := range o.TopProcesses {
		fmt.Fprintf(f, "%s\t%d\t%.1f\t%s\n", p.User, p.PID, p.MemoryPercent, p.Command)
	}

	return nil
}

func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	out := "up"
	if days > 0 {
		out += fmt.Sprintf(" %d days,", days)
	}
	if hours > 0 {
		out += fmt.Sprintf(" %d hours,", hours)
	}
	out += fmt.Sprintf(" %d minutes", minutes)

	return out
}

// recordTelemetry appends the snapshot to the sqlite database when
// recording is enabled. Failure is contained like any other side effect.
func recordTelemetry(cfg *config.Config, snap collector.Snapshot) {
	if !cfg.Record {
		return
	}

	repo, err := telemetry.NewRepository(telemetry.Config{DBPath: cfg.Database, Enabled: true})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open telemetry database")
		return
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close telemetry database")
		}
	}()

	if err := repo.Record(&snap, time.Now()); err != nil {
		logger.Error().Err(err).Msg("Failed to record snapshot")
		return
	}
	logger.Debug().Str("path", cfg.Database).Msg("Snapshot recorded")
}
