package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/hostwatch/internal/collector"
	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

// Repository records snapshots to the telemetry database
type Repository interface {
	Record(snap *collector.Snapshot, at time.Time) error
	Close() error
}

type repository struct {
	db *sql.DB
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	// Open database with specific pragmas for better performance and safety
	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateSchema(db); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	logger.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Telemetry repository initialized")

	return &repository{db: db}, nil
}

// Record inserts one snapshot row. Each run records exactly one row,
// so the insert is synchronous.
func (r *repository) Record(snap *collector.Snapshot, at time.Time) error {
	errFactory := errors.New()

	if snap == nil {
		return errFactory.New(ErrInvalidSnapshot)
	}

	temperature := sql.NullFloat64{}
	if snap.CPUTemperature != nil {
		temperature = sql.NullFloat64{Float64: *snap.CPUTemperature, Valid: true}
	}

	if _, err := r.db.Exec(insertSnapshotSQL,
		at.Unix(),
		snap.CPUUsagePercent,
		snap.MemoryUsagePercent,
		snap.DiskUsage,
		temperature,
		snap.ServiceStatus,
	); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (r *repository) Close() error {
	errFactory := errors.New()

	// Checkpoint WAL and cleanup on close
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	return nil
}
