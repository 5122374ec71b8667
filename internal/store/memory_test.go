package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisismap/signal-aggregator/internal/domain"
)

func TestMemory(t *testing.T) {
	t.Run("empty before first set", func(t *testing.T) {
		m := NewMemory()
		_, ok := m.Latest()
		assert.False(t, ok)
	})

	t.Run("returns the stored snapshot", func(t *testing.T) {
		m := NewMemory()
		snap := Snapshot{
			RunID:       "run-1",
			GeneratedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
			Outages:     []domain.Outage{{ID: "out-1"}},
		}
		m.Set(snap)

		got, ok := m.Latest()
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(snap, got))
	})

	t.Run("set replaces entirely", func(t *testing.T) {
		m := NewMemory()
		m.Set(Snapshot{RunID: "run-1", Outages: []domain.Outage{{ID: "out-1"}}})
		m.Set(Snapshot{RunID: "run-2"})

		got, ok := m.Latest()
		require.True(t, ok)
		assert.Equal(t, "run-2", got.RunID)
		assert.Empty(t, got.Outages)
	})

	t.Run("empty snapshot still counts as set", func(t *testing.T) {
		m := NewMemory()
		m.Set(Snapshot{RunID: "run-1"})
		_, ok := m.Latest()
		assert.True(t, ok)
	})
}
