package telemetry_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/telemetry"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) telemetry.Config {
	t.Helper()
	return telemetry.Config{
		DBPath:  filepath.Join(t.TempDir(), "metrics.db"),
		Enabled: true,
	}
}

func TestNewRepositoryInitializesSchema(t *testing.T) {
	cfg := testConfig(t)

	repo, err := telemetry.NewRepository(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	version, err := telemetry.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, telemetry.SchemaVersion, version)

	exists, err := telemetry.TableExists(db, "snapshots")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecordSnapshot(t *testing.T) {
	cfg := testConfig(t)

	repo, err := telemetry.NewRepository(cfg)
	require.NoError(t, err)

	temperature := 55.5
	snap := &collector.Snapshot{
		CPUUsagePercent:    12.5,
		MemoryUsagePercent: 42.0,
		DiskUsage:          "87%",
		CPUTemperature:     &temperature,
		ServiceStatus:      "active",
	}
	at := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(snap, at))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var (
		ts      int64
		cpu     float64
		memory  float64
		disk    string
		temp    sql.NullFloat64
		service string
	)
	err = db.QueryRow(`
        SELECT timestamp, cpu_percent, memory_percent, disk_usage, cpu_temperature, service_status
        FROM snapshots
    `).Scan(&ts, &cpu, &memory, &disk, &temp, &service)
	require.NoError(t, err)

	assert.Equal(t, at.Unix(), ts)
	assert.InDelta(t, 12.5, cpu, 1e-9)
	assert.InDelta(t, 42.0, memory, 1e-9)
	assert.Equal(t, "87%", disk)
	require.True(t, temp.Valid)
	assert.InDelta(t, 55.5, temp.Float64, 1e-9)
	assert.Equal(t, "active", service)
}

func TestRecordAbsentTemperature(t *testing.T) {
	cfg := testConfig(t)

	repo, err := telemetry.NewRepository(cfg)
	require.NoError(t, err)

	snap := &collector.Snapshot{DiskUsage: "10%", ServiceStatus: "unknown"}
	require.NoError(t, repo.Record(snap, time.Now()))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var temp sql.NullFloat64
	require.NoError(t, db.QueryRow("SELECT cpu_temperature FROM snapshots").Scan(&temp))
	assert.False(t, temp.Valid)
}

func TestRecordNilSnapshot(t *testing.T) {
	repo, err := telemetry.NewRepository(testConfig(t))
	require.NoError(t, err)
	defer repo.Close()

	require.Error(t, repo.Record(nil, time.Now()))
}

func TestReopenExistingDatabase(t *testing.T) {
	cfg := testConfig(t)

	repo, err := telemetry.NewRepository(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// A second run against the same database validates the schema
	repo, err = telemetry.NewRepository(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, telemetry.Config{Enabled: false}.Validate(), "path only required when enabled")
	assert.Error(t, telemetry.Config{Enabled: true}.Validate())
	assert.NoError(t, telemetry.Config{Enabled: true, DBPath: "/tmp/metrics.db"}.Validate())
}
