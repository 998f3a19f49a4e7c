package report

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/logscan"
)

// SnapshotBody composes the plain-text email body for the metrics path,
// listing every summary field and every alert.
func SnapshotBody(snap collector.Snapshot, alerts []string) string {
	var b strings.Builder
	b.WriteString("System Monitor Report\n\nSummary:\n")
	fmt.Fprintf(&b, "- cpu_usage_percent: %.2f\n", snap.CPUUsagePercent)
	fmt.Fprintf(&b, "- memory_usage_percent: %.2f\n", snap.MemoryUsagePercent)
	fmt.Fprintf(&b, "- disk_usage: %s\n", snap.DiskUsage)
	if snap.CPUTemperature != nil {
		fmt.Fprintf(&b, "- cpu_temperature_celsius: %.1f\n", *snap.CPUTemperature)
	} else {
		b.WriteString("- cpu_temperature_celsius: not available\n")
	}
	fmt.Fprintf(&b, "- service_status: %s\n", snap.ServiceStatus)

	b.WriteString("\nAlerts:\n")
	for _, alert := range alerts {
		fmt.Fprintf(&b, "- %s\n", alert)
	}

	return b.String()
}

// LogSummaryBody composes the plain-text email body for the log path
func LogSummaryBody(summary *logscan.Summary, timestamp string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 Log File: %s\n🕒 Timestamp: %s\n\n📊 Summary:\n", summary.File, timestamp)
	for _, stat := range summary.Stats {
		fmt.Fprintf(&b, "- %s: %d (%.1f%% %s)\n",
			logscan.Capitalize(stat.Keyword), stat.Count, stat.Percentage, logscan.Bar(stat.Percentage))
	}

	return b.String()
}
