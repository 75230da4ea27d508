package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/notary/internal/logger"
)

// DefaultResyncInterval is used when no positive interval is configured.
const DefaultResyncInterval = 30 * time.Second

// Syncer rebuilds rendered views from the card store.
type Syncer interface {
	Load(ctx context.Context) error
	Resync(ctx context.Context) error
}

// ViewSyncer keeps the card views in step with the store, which other
// processes (CLI, other instances) may write to.
type ViewSyncer struct {
	syncer        Syncer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	manualTrigger chan struct{}
}

// NewViewSyncer creates a new view syncer
func NewViewSyncer(
	syncer Syncer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ViewSyncer {
	if interval <= 0 {
		interval = DefaultResyncInterval
	}
	return &ViewSyncer{
		syncer:        syncer,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the views once, then resyncs periodically and on manual trigger.
func (vs *ViewSyncer) Start(ctx context.Context) error {
	if err := vs.syncer.Load(ctx); err != nil {
		close(vs.doneCh)
		return fmt.Errorf("initial load failed: %w", err)
	}

	ticker := time.NewTicker(vs.interval)
	go func() {
		defer close(vs.doneCh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				vs.resync(ctx)
			case <-vs.manualTrigger:
				vs.logger.Info("manual resync triggered")
				vs.resync(ctx)
			case <-vs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the syncer and waits for an in-flight resync to finish.
func (vs *ViewSyncer) Stop() {
	close(vs.stopCh)
	<-vs.doneCh
}

func (vs *ViewSyncer) resync(ctx context.Context) {
	if err := vs.syncer.Resync(ctx); err != nil {
		vs.logger.Error("failed to resync card views", logger.Error(err))
	}
}
