package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/mutker/hostwatch/internal/alert"
	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/config"
	"codeberg.org/mutker/hostwatch/internal/history"
	"codeberg.org/mutker/hostwatch/internal/logger"
	"codeberg.org/mutker/hostwatch/internal/notify"
	"codeberg.org/mutker/hostwatch/internal/report"
)

func main() {
	cfg, err := config.Load(config.ToolMonitor, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel, logger.IsService())

	ctx := context.Background()
	src := collector.NewSystemSource()

	snap := collector.Collect(ctx, src, cfg.Service)
	printSnapshot(snap, cfg.Service)

	overview := collector.CollectOverview(ctx, src)
	printOverview(overview)
	if err := appendMonitorLog(snap, overview); err != nil {
		logger.Warn().Err(err).Msg("Failed to append monitor log")
	}

	alerts := alert.Evaluate(snap)
	for _, a := range alerts {
		fmt.Println(a)
	}

	var mailer notify.Mailer
	if cfg.Email {
		mailer, err = notify.NewMailer(notify.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Credentials: cfg.Credentials,
		})
		if err != nil {
			// Reporter prints the missing-credentials marker
			mailer = nil
		}
	}

	rep := report.New(history.NewStore(cfg.HistoryPath), mailer, notify.NewBeeper())
	rep.Run(report.Request{
		Summary:     snap,
		Alerts:      alerts,
		AlertsFound: len(alerts) > 0,
		Persist:     cfg.SaveSummary,
		Email:       cfg.Email && len(alerts) > 0,
		Subject:     report.AlertSubject,
		Body:        report.SnapshotBody(snap, alerts),
		Recipient:   cfg.Recipient,
		Beep:        cfg.Beep,
	})

	recordTelemetry(cfg, snap)
}

func printSnapshot(snap collector.Snapshot, service string) {
	fmt.Printf("CPU Usage: %.2f%%\n", snap.CPUUsagePercent)
	fmt.Printf("Memory Usage: %.2f%%\n", snap.MemoryUsagePercent)
	fmt.Printf("Disk Usage: %s\n", snap.DiskUsage)
	if snap.CPUTemperature != nil {
		fmt.Printf("CPU Temperature: %.1f°C\n", *snap.CPUTemperature)
	} else {
		fmt.Println("CPU Temperature: Not available")
	}
	fmt.Printf("Service '%s' status: %s\n", service, snap.ServiceStatus)
}
