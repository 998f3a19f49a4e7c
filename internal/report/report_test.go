package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/history"
	"codeberg.org/mutker/hostwatch/internal/logscan"
	"codeberg.org/mutker/hostwatch/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent    int
	subject string
	body    string
	to      string
	err     error
}

func (m *fakeMailer) Send(subject, body, recipient string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	m.subject = subject
	m.body = body
	m.to = recipient
	return nil
}

type fakeBeeper struct {
	beeps int
}

func (b *fakeBeeper) Beep() error {
	b.beeps++
	return nil
}

func newStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewStore(filepath.Join(t.TempDir(), "summary.json"))
}

func TestRunAllSideEffects(t *testing.T) {
	store := newStore(t)
	mailer := &fakeMailer{}
	beeper := &fakeBeeper{}

	rep := report.New(store, mailer, beeper)
	rep.Run(report.Request{
		Summary:     map[string]any{"cpu_usage_percent": 60.0},
		Alerts:      []string{"WARNING: CPU usage is above 50%"},
		AlertsFound: true,
		Persist:     true,
		Email:       true,
		Subject:     report.AlertSubject,
		Body:        "body",
		Recipient:   "ops@example.com",
		Beep:        true,
	})

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "ops@example.com", mailer.to)
	assert.Equal(t, 1, beeper.beeps)
}

func TestRunMissingCredentialsSkipsEmailOnly(t *testing.T) {
	store := newStore(t)
	beeper := &fakeBeeper{}

	// nil mailer stands for absent credentials
	rep := report.New(store, nil, beeper)
	rep.Run(report.Request{
		Summary:     map[string]any{"total": 1},
		AlertsFound: true,
		Persist:     true,
		Email:       true,
		Recipient:   "ops@example.com",
		Beep:        true,
	})

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1, "persist still executed")
	assert.Equal(t, 1, beeper.beeps, "beep still executed")
}

func TestRunDeliveryFailureDoesNotBlockSiblings(t *testing.T) {
	store := newStore(t)
	mailer := &fakeMailer{err: errors.New().New(errors.ErrDeliveryFailed)}
	beeper := &fakeBeeper{}

	rep := report.New(store, mailer, beeper)
	rep.Run(report.Request{
		Summary:     map[string]any{"total": 1},
		AlertsFound: true,
		Persist:     true,
		Email:       true,
		Recipient:   "ops@example.com",
		Beep:        true,
	})

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, beeper.beeps)
	assert.Zero(t, mailer.sent)
}

func TestRunBeepOnlyOnAlerts(t *testing.T) {
	beeper := &fakeBeeper{}
	rep := report.New(newStore(t), nil, beeper)

	rep.Run(report.Request{Beep: true, AlertsFound: false})
	assert.Zero(t, beeper.beeps)

	rep.Run(report.Request{Beep: true, AlertsFound: true})
	assert.Equal(t, 1, beeper.beeps)
}

func TestRunNothingRequested(t *testing.T) {
	store := newStore(t)
	mailer := &fakeMailer{}
	beeper := &fakeBeeper{}

	rep := report.New(store, mailer, beeper)
	rep.Run(report.Request{Summary: map[string]any{}, AlertsFound: true})

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, mailer.sent)
	assert.Zero(t, beeper.beeps)

	// No history file is created either
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestSnapshotBody(t *testing.T) {
	temperature := 75.0
	snap := collector.Snapshot{
		CPUUsagePercent:    55,
		MemoryUsagePercent: 40,
		DiskUsage:          "95%",
		CPUTemperature:     &temperature,
		ServiceStatus:      "inactive",
	}
	body := report.SnapshotBody(snap, []string{"WARNING: CPU temperature is high"})

	assert.Contains(t, body, "- cpu_usage_percent: 55.00")
	assert.Contains(t, body, "- memory_usage_percent: 40.00")
	assert.Contains(t, body, "- disk_usage: 95%")
	assert.Contains(t, body, "- cpu_temperature_celsius: 75.0")
	assert.Contains(t, body, "- service_status: inactive")
	assert.Contains(t, body, "- WARNING: CPU temperature is high")
}

func TestSnapshotBodyAbsentTemperature(t *testing.T) {
	body := report.SnapshotBody(collector.Snapshot{DiskUsage: "10%", ServiceStatus: "active"}, nil)
	assert.Contains(t, body, "- cpu_temperature_celsius: not available")
}

func TestLogSummaryBody(t *testing.T) {
	summary := &logscan.Summary{
		File: "app.log",
		Stats: []logscan.KeywordStat{
			{Keyword: "error", Count: 1, Percentage: 50},
			{Keyword: "warn", Count: 1, Percentage: 50},
		},
		Total: 2,
	}
	body := report.LogSummaryBody(summary, "2026-08-23 10:00:00")

	assert.Contains(t, body, "Log File: app.log")
	assert.Contains(t, body, "2026-08-23 10:00:00")
	assert.Contains(t, body, "- Error: 1 (50.0% ############)")
	assert.Contains(t, body, "- Warn: 1 (50.0% ############)")
}
