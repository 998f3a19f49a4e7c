// Package history persists run results as a single JSON array,
// appended to by read-modify-write on every run that requests it.
// Concurrent invocations race on the file (last writer wins); the tools
// are single-shot batch jobs and do not lock it.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/logger"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"

	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Record is one persisted run result
type Record struct {
	Timestamp string   `json:"timestamp"`
	LogFile   string   `json:"log_file,omitempty"`
	Summary   any      `json:"summary"`
	Alerts    []string `json:"alerts"`
}

type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the history array. An absent file yields an empty history;
// malformed content yields an empty history plus a history_corrupt
// error so the caller can surface the discard.
func (s *Store) Load() ([]Record, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errFactory.Wrap(errors.ErrHistoryCorrupt, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errFactory.Wrap(errors.ErrHistoryCorrupt, err)
	}

	return records, nil
}

// Append stamps a new record, appends it to the loaded history and
// rewrites the whole file. Corrupt prior content is discarded.
func (s *Store) Append(summary any, logFile string, alerts []string) error {
	errFactory := errors.New()

	records, err := s.Load()
	if err != nil {
		logger.Warn().
			Str("error_code", string(errors.ErrHistoryCorrupt)).
			Str("path", s.path).
			Err(err).
			Msg("Discarding unreadable history")
		records = nil
	}

	if alerts == nil {
		alerts = []string{}
	}
	records = append(records, Record{
		Timestamp: s.now().Format(TimestampLayout),
		LogFile:   logFile,
		Summary:   summary,
		Alerts:    alerts,
	})

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return errFactory.Wrap(errors.ErrPersistFailed, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
			return errFactory.Wrap(errors.ErrPersistFailed, err)
		}
	}
	if err := os.WriteFile(s.path, data, defaultFilePerm); err != nil {
		return errFactory.Wrap(errors.ErrPersistFailed, err)
	}

	return nil
}
