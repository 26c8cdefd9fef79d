// Package memory holds the in-process implementations of the core stores.
// All state lives in this process and is lost on restart; that is an accepted
// property of the system, not an oversight. Every store guards its state with
// its own lock and stores are independent, so no operation ever takes two
// locks.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

const (
	// DefaultRetention is the maximum number of entries kept before the
	// oldest are evicted.
	DefaultRetention = 50000

	defaultListLimit = 1000
	maxListLimit     = 10000
)

// LogStore is the bounded append-only log of device reports.
type LogStore struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
	max     int
}

// NewLogStore returns a LogStore retaining at most max entries.
// If max <= 0, DefaultRetention is used.
func NewLogStore(max int) *LogStore {
	if max <= 0 {
		max = DefaultRetention
	}
	return &LogStore{max: max}
}

// Append stores an entry, evicting oldest entries when the retention ceiling
// is exceeded. Returns the number of evicted entries. Eviction is silent.
func (s *LogStore) Append(_ context.Context, entry domain.LogEntry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)

	evicted := len(s.entries) - s.max
	if evicted <= 0 {
		return 0
	}
	// Shift in place so the backing array does not pin evicted entries.
	copy(s.entries, s.entries[evicted:])
	s.entries = s.entries[:s.max]
	return evicted
}

// List returns a snapshot of entries matching the filter, newest first by
// device timestamp. The limit is clamped to [1, maxListLimit]; zero or
// negative values fall back to the default of 1000.
func (s *LogStore) List(_ context.Context, filter ports.ListFilter) []domain.LogEntry {
	s.mu.RLock()
	rows := s.snapshot(filter.DeviceID)
	s.mu.RUnlock()

	sortNewestFirst(rows)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// ListByDevice returns every entry for one device, newest first.
func (s *LogStore) ListByDevice(_ context.Context, deviceID string) []domain.LogEntry {
	s.mu.RLock()
	rows := s.snapshot(deviceID)
	s.mu.RUnlock()

	sortNewestFirst(rows)
	return rows
}

// Latest returns the entry with the highest device timestamp for the device.
func (s *LogStore) Latest(_ context.Context, deviceID string) (domain.LogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best domain.LogEntry
	found := false
	for _, e := range s.entries {
		if e.DeviceID != deviceID {
			continue
		}
		// >= so that on equal timestamps the most recently received wins.
		if !found || e.Timestamp >= best.Timestamp {
			best = e
			found = true
		}
	}
	return best, found
}

// Len reports the current number of stored entries.
func (s *LogStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// snapshot copies entries (optionally filtered by device) while holding the
// read lock, so callers never observe a partial write.
func (s *LogStore) snapshot(deviceID string) []domain.LogEntry {
	rows := make([]domain.LogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if deviceID != "" && e.DeviceID != deviceID {
			continue
		}
		rows = append(rows, e)
	}
	return rows
}

// sortNewestFirst orders by device timestamp descending; insertion order
// breaks ties so repeated reads are deterministic.
func sortNewestFirst(rows []domain.LogEntry) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp > rows[j].Timestamp
	})
}
