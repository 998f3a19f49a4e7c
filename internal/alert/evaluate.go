// Package alert compares a metrics snapshot against the fixed alert
// thresholds and produces the ordered alert list.
package alert

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/hostwatch/internal/collector"
)

// Fixed thresholds; not configurable
const (
	maxCPUTemperature = 70.0
	maxDiskPercent    = 90
	maxCPUPercent     = 50.0
	maxMemoryPercent  = 70.0
	activeState       = "active"
)

const (
	MsgHighTemperature = "WARNING: CPU temperature is high"
	MsgDiskThreshold   = "ERROR: Disk usage exceeds threshold"
	MsgServiceFailed   = "CRITICAL: Service failed to start"
	MsgHighCPU         = "WARNING: CPU usage is above 50%"
	MsgHighMemory      = "WARNING: Memory usage is above 70%"
)

// Evaluate applies the rule table to the snapshot. Evaluation order is
// fixed and every rule is checked; the result order follows it.
func Evaluate(snap collector.Snapshot) []string {
	var alerts []string

	if snap.CPUTemperature != nil && *snap.CPUTemperature > maxCPUTemperature {
		alerts = append(alerts, MsgHighTemperature)
	}
	if diskPercent(snap.DiskUsage) > maxDiskPercent {
		alerts = append(alerts, MsgDiskThreshold)
	}
	if snap.ServiceStatus != activeState {
		alerts = append(alerts, MsgServiceFailed)
	}
	if snap.CPUUsagePercent > maxCPUPercent {
		alerts = append(alerts, MsgHighCPU)
	}
	if snap.MemoryUsagePercent > maxMemoryPercent {
		alerts = append(alerts, MsgHighMemory)
	}

	return alerts
}

// diskPercent parses usage strings like "87%". Parse failures count as
// zero, which raises no alert.
func diskPercent(usage string) int {
	value, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(usage), "%"))
	if err != nil {
		return 0
	}

	return value
}
