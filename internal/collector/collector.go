package collector

import (
	"context"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/logger"
)

// Documented defaults substituted when a sub-query fails. A single
// failed metric never aborts the run.
const (
	defaultDiskUsage     = "0%"
	defaultServiceStatus = "unknown"
	topProcessCount      = 5
)

// Collect builds a Snapshot from the source, folding every per-field
// failure to its default and logging it as metric_unavailable.
func Collect(ctx context.Context, src Source, service string) Snapshot {
	snap := Snapshot{
		DiskUsage:     defaultDiskUsage,
		ServiceStatus: defaultServiceStatus,
	}

	if v, err := src.CPUPercent(ctx); err != nil {
		logUnavailable("cpu_usage_percent", err)
	} else {
		snap.CPUUsagePercent = v
	}

	if v, err := src.MemoryPercent(ctx); err != nil {
		logUnavailable("memory_usage_percent", err)
	} else {
		snap.MemoryUsagePercent = v
	}

	if v, err := src.DiskUsage(ctx); err != nil {
		logUnavailable("disk_usage", err)
	} else {
		snap.DiskUsage = v
	}

	if v, err := src.Temperature(ctx); err != nil {
		logUnavailable("cpu_temperature_celsius", err)
	} else {
		snap.CPUTemperature = &v
	}

	if v, err := src.ServiceStatus(ctx, service); err != nil {
		logUnavailable("service_status", err)
	} else {
		snap.ServiceStatus = v
	}

	return snap
}

// CollectOverview samples the presentation-only host figures. Failed
// fields stay zero-valued; the overview never gates a run.
func CollectOverview(ctx context.Context, src Source) Overview {
	var overview Overview

	if v, err := src.LoadAverage(ctx); err != nil {
		logUnavailable("load_average", err)
	} else {
		overview.Load = v
	}

	if v, err := src.Uptime(ctx); err != nil {
		logUnavailable("uptime", err)
	} else {
		overview.Uptime = v
	}

	if v, err := src.TopProcesses(ctx, topProcessCount); err != nil {
		logUnavailable("top_processes", err)
	} else {
		overview.TopProcesses = v
	}

	return overview
}

func logUnavailable(metric string, err error) {
	logger.Warn().
		Str("error_code", string(errors.ErrMetricUnavailable)).
		Str("metric", metric).
		Err(err).
		Msg("Metric unavailable, using default")
}
