package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/notary/internal/logger"
)

type countingSyncer struct {
	loads   atomic.Int32
	resyncs atomic.Int32
	loadErr error
	synced  chan struct{}
}

func newCountingSyncer() *countingSyncer {
	return &countingSyncer{synced: make(chan struct{}, 16)}
}

func (c *countingSyncer) Load(context.Context) error {
	c.loads.Add(1)
	return c.loadErr
}

func (c *countingSyncer) Resync(context.Context) error {
	c.resyncs.Add(1)
	select {
	case c.synced <- struct{}{}:
	default:
	}
	return nil
}

func waitSynced(t *testing.T, c *countingSyncer) {
	t.Helper()
	select {
	case <-c.synced:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for resync")
	}
}

func TestViewSyncerLoadsOnStart(t *testing.T) {
	s := newCountingSyncer()
	vs := NewViewSyncer(s, logger.Nop(), time.Hour, make(chan struct{}, 1))

	if err := vs.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer vs.Stop()

	if got := s.loads.Load(); got != 1 {
		t.Errorf("loads = %d, want 1", got)
	}
}

func TestViewSyncerStartFailsWhenLoadFails(t *testing.T) {
	s := newCountingSyncer()
	s.loadErr = errors.New("store down")
	vs := NewViewSyncer(s, logger.Nop(), time.Hour, nil)

	if err := vs.Start(context.Background()); !errors.Is(err, s.loadErr) {
		t.Fatalf("Start() error = %v, want %v", err, s.loadErr)
	}
}

func TestViewSyncerManualTrigger(t *testing.T) {
	s := newCountingSyncer()
	trigger := make(chan struct{}, 1)
	vs := NewViewSyncer(s, logger.Nop(), time.Hour, trigger)

	if err := vs.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer vs.Stop()

	trigger <- struct{}{}
	waitSynced(t, s)

	if got := s.resyncs.Load(); got != 1 {
		t.Errorf("resyncs = %d, want 1", got)
	}
}

func TestViewSyncerTicks(t *testing.T) {
	s := newCountingSyncer()
	vs := NewViewSyncer(s, logger.Nop(), 10*time.Millisecond, nil)

	if err := vs.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitSynced(t, s)
	waitSynced(t, s)
	vs.Stop()

	if got := s.resyncs.Load(); got < 2 {
		t.Errorf("resyncs = %d, want at least 2", got)
	}
}

func TestViewSyncerStopsOnContextCancel(t *testing.T) {
	s := newCountingSyncer()
	ctx, cancel := context.WithCancel(context.Background())
	vs := NewViewSyncer(s, logger.Nop(), time.Hour, nil)

	if err := vs.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	select {
	case <-vs.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("syncer goroutine did not exit after cancel")
	}
}

func TestNewViewSyncerDefaultInterval(t *testing.T) {
	vs := NewViewSyncer(newCountingSyncer(), logger.Nop(), 0, nil)
	if vs.interval != DefaultResyncInterval {
		t.Errorf("interval = %v, want %v", vs.interval, DefaultResyncInterval)
	}
}
