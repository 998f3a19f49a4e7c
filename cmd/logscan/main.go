package main

import (
	"fmt"
	"os"
	"time"

	"codeberg.org/mutker/hostwatch/internal/config"
	"codeberg.org/mutker/hostwatch/internal/history"
	"codeberg.org/mutker/hostwatch/internal/logger"
	"codeberg.org/mutker/hostwatch/internal/logscan"
	"codeberg.org/mutker/hostwatch/internal/notify"
	"codeberg.org/mutker/hostwatch/internal/report"
)

func main() {
	cfg, err := config.Load(config.ToolAnalyze, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel, logger.IsService())

	summary, err := logscan.Scan(cfg.File, cfg.Keywords)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error reading log file: %v\n", err)
		os.Exit(1)
	}
	printSummary(summary)

	alertsFound := summary.HasAlerts(logscan.AlertKeywords)
	if cfg.Beep && alertsFound {
		fmt.Println("\n⚠️ ALERT: Beep due to alert keyword match")
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
		Summary:     summary,
		LogFile:     cfg.File,
		AlertsFound: alertsFound,
		Persist:     cfg.SaveSummary,
		Email:       cfg.Email,
		Subject:     report.LogSummarySubject,
		Body:        report.LogSummaryBody(summary, time.Now().Format(history.TimestampLayout)),
		Recipient:   cfg.Recipient,
		Beep:        cfg.Beep,
	})
}

func printSummary(s *logscan.Summary) {
	fmt.Println("\n🔍 Log Summary:")
	for _, stat := range s.Stats {
		fmt.Printf("%-10s: %d | %s (%.1f%%)\n",
			logscan.Capitalize(stat.Keyword), stat.Count, logscan.Bar(stat.Percentage), stat.Percentage)
	}
}
