package domain

import (
	"sort"
	"sync"
	"time"
)

// RunStats accumulates counters for a single import run. Safe for concurrent use.
type RunStats struct {
	mu         sync.Mutex
	imported   int
	duplicates int
	errors     int
	sources    map[string]int
}

// NewRunStats returns zeroed counters.
func NewRunStats() *RunStats {
	return &RunStats{sources: map[string]int{}}
}

// TrackSource makes a source visible in the breakdown even with zero imports.
func (s *RunStats) TrackSource(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sources[name]; !ok {
		s.sources[name] = 0
	}
}

// AddImported counts one persisted article for the named source.
func (s *RunStats) AddImported(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imported++
	s.sources[source]++
}

// AddDuplicate counts one entry that was already stored.
func (s *RunStats) AddDuplicate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duplicates++
}

// AddError counts one failure.
func (s *RunStats) AddError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// SourceCount is one row of the per-source breakdown.
type SourceCount struct {
	Source string
	Count  int
}

// Snapshot is an immutable copy of the counters.
type Snapshot struct {
	Imported   int
	Duplicates int
	Errors     int
	Sources    []SourceCount
}

// Snapshot copies the counters; sources are ordered by count descending, then name.
func (s *RunStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]SourceCount, 0, len(s.sources))
	for name, count := range s.sources {
		rows = append(rows, SourceCount{Source: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Source < rows[j].Source
	})

	return Snapshot{
		Imported:   s.imported,
		Duplicates: s.duplicates,
		Errors:     s.errors,
		Sources:    rows,
	}
}

// RunReport is produced at the end of an import run.
type RunReport struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Stats     Snapshot
}
