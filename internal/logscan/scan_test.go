package logscan_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/logscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))
	return path
}

func TestScanCountsAndPercentages(t *testing.T) {
	path := writeLog(t, "ERROR disk full\nwarn: low memory\nall good\n")

	summary, err := logscan.Scan(path, []string{"error", "warn"})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	require.Len(t, summary.Stats, 2)
	assert.Equal(t, logscan.KeywordStat{Keyword: "error", Count: 1, Percentage: 50}, summary.Stats[0])
	assert.Equal(t, logscan.KeywordStat{Keyword: "warn", Count: 1, Percentage: 50}, summary.Stats[1])
}

func TestScanKeywordsMatchIndependently(t *testing.T) {
	// One line can count for several keywords
	path := writeLog(t, "ERROR: operation failed with warning\n")

	summary, err := logscan.Scan(path, []string{"error", "fail", "warn"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	for _, stat := range summary.Stats {
		assert.Equal(t, 1, stat.Count, "keyword %q", stat.Keyword)
	}
}

func TestScanPercentagesSumToHundred(t *testing.T) {
	path := writeLog(t, "error\nerror\nerror\nwarn\ncritical\nfail\nfail\n")

	summary, err := logscan.Scan(path, []string{"warn", "critical", "error", "fail"})
	require.NoError(t, err)
	require.Positive(t, summary.Total)

	sum := 0.0
	for _, stat := range summary.Stats {
		sum += stat.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestScanNoMatches(t *testing.T) {
	path := writeLog(t, "all quiet\nnothing to see\n")

	summary, err := logscan.Scan(path, []string{"error", "warn"})
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	for _, stat := range summary.Stats {
		assert.Zero(t, stat.Count)
		assert.Zero(t, stat.Percentage)
	}
	assert.False(t, summary.HasAlerts(logscan.AlertKeywords))
}

func TestScanCaseInsensitive(t *testing.T) {
	path := writeLog(t, "WaRn something\nWARN again\nwarn third\n")

	summary, err := logscan.Scan(path, []string{"Warn"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Stats[0].Count)
	assert.Equal(t, "Warn", summary.Stats[0].Keyword, "keyword case is preserved as configured")
}

func TestScanUnreadableFile(t *testing.T) {
	_, err := logscan.Scan(filepath.Join(t.TempDir(), "missing.log"), []string{"error"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrFileUnreadable))
}

func TestHasAlerts(t *testing.T) {
	path := writeLog(t, "custom marker here\n")

	summary, err := logscan.Scan(path, []string{"marker"})
	require.NoError(t, err)
	assert.False(t, summary.HasAlerts(logscan.AlertKeywords), "non-alert keyword matches do not trigger")

	path = writeLog(t, "critical failure\n")
	summary, err = logscan.Scan(path, []string{"critical"})
	require.NoError(t, err)
	assert.True(t, summary.HasAlerts(logscan.AlertKeywords))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", logscan.Bar(0))
	assert.Equal(t, "", logscan.Bar(3.9))
	assert.Equal(t, "#", logscan.Bar(4))
	assert.Equal(t, "############", logscan.Bar(50))
	assert.Equal(t, "#########################", logscan.Bar(100))
	assert.Equal(t, "#", logscan.Bar(7.9), "floored, not rounded")
}

func TestSummaryJSON(t *testing.T) {
	path := writeLog(t, "ERROR disk full\nwarn: low memory\nall good\n")

	summary, err := logscan.Scan(path, []string{"error", "warn"})
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded map[string]struct {
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["error"].Count)
	assert.InDelta(t, 50, decoded["warn"].Percentage, 1e-9)
}
