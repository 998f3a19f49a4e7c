// Package logscan counts keyword occurrences across the lines of a log
// file and derives per-keyword shares of the total match count.
package logscan

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"codeberg.org/mutker/hostwatch/internal/errors"
)

const maxLineBytes = 1024 * 1024

// AlertKeywords is the fixed set whose matches count as alert conditions
var AlertKeywords = []string{"warn", "critical", "error", "fail"}

// KeywordStat holds one keyword's match count and its share of the
// total, in the order the keywords were configured.
type KeywordStat struct {
	Keyword    string
	Count      int
	Percentage float64
}

type Summary struct {
	File  string
	Stats []KeywordStat
	Total int
}

// Scan counts case-insensitive substring matches per keyword across all
// lines. Keywords match independently; one line can count for several.
func Scan(path string, keywords []string) (*Summary, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrFileUnreadable, err)
	}
	defer f.Close()

	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}

	counts := make([]int, len(keywords))
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	for scanner.Scan() {
		line := strings.ToLower(scanner.Text())
		for i, k := range lowered {
			if strings.Contains(line, k) {
				counts[i]++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errFactory.Wrap(errors.ErrFileUnreadable, err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	stats := make([]KeywordStat, len(keywords))
	for i, k := range keywords {
		percentage := 0.0
		if total > 0 {
			percentage = float64(counts[i]) / float64(total) * 100
		}
		stats[i] = KeywordStat{Keyword: k, Count: counts[i], Percentage: percentage}
	}

	return &Summary{File: path, Stats: stats, Total: total}, nil
}

// HasAlerts reports whether any alert keyword matched at least once
func (s *Summary) HasAlerts(alertKeywords []string) bool {
	for _, stat := range s.Stats {
		if stat.Count == 0 {
			continue
		}
		for _, k := range alertKeywords {
			if strings.EqualFold(stat.Keyword, k) {
				return true
			}
		}
	}

	return false
}

// Bar renders the textual bar graph: one unit per 4 percentage points,
// floored.
func Bar(percentage float64) string {
	units := int(percentage) / 4
	if units < 0 {
		units = 0
	}

	return strings.Repeat("#", units)
}

// Capitalize upper-cases the first rune for display and email bodies
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

type keywordJSON struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MarshalJSON renders the summary as the keyword → {count, percentage}
// mapping persisted in history records.
func (s *Summary) MarshalJSON() ([]byte, error) {
	m := make(map[string]keywordJSON, len(s.Stats))
	for _, stat := range s.Stats {
		m[stat.Keyword] = keywordJSON{Count: stat.Count, Percentage: stat.Percentage}
	}

	return json.Marshal(m)
}
