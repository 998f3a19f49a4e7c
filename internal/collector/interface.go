package collector

import (
	"context"
	"time"
)

// Source exposes typed accessors for the host metrics the collector
// samples. Each accessor wraps one OS query and fails independently.
type Source interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	DiskUsage(ctx context.Context) (string, error)
	Temperature(ctx context.Context) (float64, error)
	ServiceStatus(ctx context.Context, name string) (string, error)
	LoadAverage(ctx context.Context) (LoadAverage, error)
	Uptime(ctx context.Context) (time.Duration, error)
	TopProcesses(ctx context.Context, n int) ([]ProcessInfo, error)
}

// Snapshot is a one-time capture of host metrics, immutable after
// collection. A nil CPUTemperature means no sensor was available.
type Snapshot struct {
	CPUUsagePercent    float64  `json:"cpu_usage_percent"`
	MemoryUsagePercent float64  `json:"memory_usage_percent"`
	DiskUsage          string   `json:"disk_usage"`
	CPUTemperature     *float64 `json:"cpu_temperature_celsius"`
	ServiceStatus      string   `json:"service_status"`
}

// LoadAverage holds the 1, 5 and 15 minute load averages
type LoadAverage struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// ProcessInfo describes one entry of the top-processes listing
type ProcessInfo struct {
	User          string
	PID           int32
	MemoryPercent float64
	Command       string
}

// Overview carries the presentation-only host figures that accompany a
// Snapshot but are never persisted with it.
type Overview struct {
	Load         LoadAverage
	Uptime       time.Duration
	TopProcesses []ProcessInfo
}
