// Package store holds the latest aggregation snapshot for downstream readers.
package store

import (
	"sync"
	"time"

	"github.com/crisismap/signal-aggregator/internal/domain"
)

// Snapshot is the canonical output of one aggregation run. Records carry no
// identity across runs; each snapshot fully replaces the previous one.
type Snapshot struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Outages     []domain.Outage          `json:"outages"`
	Hotspots    []domain.ConflictHotspot `json:"hotspots"`
	Arcs        []domain.ConflictArc     `json:"arcs"`
}

// Memory keeps the most recent snapshot in process memory. It is safe for
// concurrent readers while the runner replaces the snapshot between runs.
type Memory struct {
	mu   sync.RWMutex
	snap Snapshot
	set  bool
}

// NewMemory creates an empty snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

// Set replaces the stored snapshot.
func (m *Memory) Set(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.set = true
}

// Latest returns the stored snapshot, or ok=false before the first run.
func (m *Memory) Latest() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap, m.set
}
