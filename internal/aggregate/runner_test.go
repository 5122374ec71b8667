package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisismap/signal-aggregator/internal/domain"
	"github.com/crisismap/signal-aggregator/internal/observability"
	"github.com/crisismap/signal-aggregator/internal/store"
)

type stubPublisher struct {
	mu        sync.Mutex
	published []store.Snapshot
	err       error
}

func (p *stubPublisher) PublishSnapshot(_ context.Context, snap store.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, snap)
	return p.err
}

func (p *stubPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func newTestRunner(t *testing.T, opts RunnerOptions) *Runner {
	t.Helper()
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Interval == 0 {
		opts.Interval = time.Minute
	}
	if opts.RunTimeout == 0 {
		opts.RunTimeout = 10 * time.Second
	}
	agg := New(slog.Default(), observability.NewMetricsForTesting(), 5*time.Second, 4)
	return NewRunner(agg, opts, slog.Default(), observability.NewMetricsForTesting())
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the snapshot", func(t *testing.T) {
		memory := store.NewMemory()
		r := newTestRunner(t, RunnerOptions{
			OutageSources: []OutageSource{
				&stubOutageSource{name: "a", records: []domain.Outage{
					mustNormalize(t, domain.RawOutageRecord{CountryCode: "UA", Type: domain.OutageInternet, Score: 0.5, Source: "a"}),
				}},
			},
			Store: memory,
		})

		snap := r.RunOnce(ctx)

		assert.NotEmpty(t, snap.RunID)
		assert.Len(t, snap.Outages, 1)

		stored, ok := memory.Latest()
		require.True(t, ok)
		assert.Equal(t, snap.RunID, stored.RunID)
	})

	t.Run("hands the snapshot to the publisher", func(t *testing.T) {
		pub := &stubPublisher{}
		r := newTestRunner(t, RunnerOptions{Publisher: pub})

		snap := r.RunOnce(ctx)

		require.Equal(t, 1, pub.count())
		assert.Equal(t, snap.RunID, pub.published[0].RunID)
	})

	t.Run("publish failure does not fail the run", func(t *testing.T) {
		pub := &stubPublisher{err: assert.AnError}
		memory := store.NewMemory()
		r := newTestRunner(t, RunnerOptions{Publisher: pub, Store: memory})

		r.RunOnce(ctx)

		_, ok := memory.Latest()
		assert.True(t, ok)
		assert.NoError(t, r.CheckReadiness(ctx))
	})

	t.Run("all-failure run produces an empty snapshot", func(t *testing.T) {
		r := newTestRunner(t, RunnerOptions{
			OutageSources: []OutageSource{
				&stubOutageSource{name: "down", err: ErrSourceUnavailable},
			},
			ConflictSource: &stubConflictSource{name: "views", err: ErrSourceUnavailable},
		})

		snap := r.RunOnce(ctx)

		assert.Empty(t, snap.Outages)
		assert.Empty(t, snap.Hotspots)
		assert.Empty(t, snap.Arcs)
		assert.NoError(t, r.CheckReadiness(ctx))
	})

	t.Run("run IDs are unique per run", func(t *testing.T) {
		r := newTestRunner(t, RunnerOptions{})
		s1 := r.RunOnce(ctx)
		s2 := r.RunOnce(ctx)
		assert.NotEqual(t, s1.RunID, s2.RunID)
	})
}

func TestCheckReadiness(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t, RunnerOptions{})

	err := r.CheckReadiness(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no aggregation run")

	r.RunOnce(ctx)
	assert.NoError(t, r.CheckReadiness(ctx))
}

func TestRun(t *testing.T) {
	t.Run("runs immediately and again on each tick", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		pub := &stubPublisher{}
		r := newTestRunner(t, RunnerOptions{
			Publisher: pub,
			Interval:  time.Minute,
			Clock:     clock,
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = r.Run(ctx)
		}()

		require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, time.Millisecond)

		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Minute)
		require.Eventually(t, func() bool { return pub.count() == 2 }, time.Second, time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("runner did not stop on cancellation")
		}
	})
}
