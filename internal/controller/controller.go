package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/notary/internal/domain"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/store"
	"github.com/MrSnakeDoc/notary/internal/view"
)

// ErrViewNotFound is returned when a gesture names a card view that is not rendered.
var ErrViewNotFound = errors.New("card view not found")

// Reasons reported for captures that were silently rejected.
const (
	ReasonEmptyText = "empty_text"
	ReasonDuplicate = "duplicate"
)

// Renderer is the sidebar the controller keeps in step with the store.
type Renderer interface {
	CreateCardView(card domain.Card) view.CardView
	RemoveCardView(id string) bool
	ClearAllViews()
	MarkSynced()

	Get(id string) (view.CardView, bool)
	All() []view.CardView
	FirstSelected() (view.CardView, bool)
	SetState(id string, state domain.SelectionState) bool
}

// Options tunes controller behavior.
type Options struct {
	// ReaddOnDeselect re-adds a card's tuple to the store when the user
	// deselects it. No Exists check is made, so this can store a duplicate.
	ReaddOnDeselect bool
}

// CaptureResult describes what a capture gesture did.
type CaptureResult struct {
	Created bool           `json:"created"`
	Reason  string         `json:"reason,omitempty"`
	View    *view.CardView `json:"view,omitempty"`
}

// Controller binds user gestures to the card store and the rendered views.
// Gestures are serialized: each one runs to completion before the next starts.
type Controller struct {
	mu       sync.Mutex
	repo     store.Repository
	renderer Renderer
	opts     Options
	logger   logger.Logger
}

// New creates a controller.
func New(repo store.Repository, renderer Renderer, opts Options, log logger.Logger) *Controller {
	return &Controller{
		repo:     repo,
		renderer: renderer,
		opts:     opts,
		logger:   log,
	}
}

// Load renders one unselected view per stored card, in stored order.
// Views already rendered are dropped first.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cards: %w", err)
	}

	c.renderer.ClearAllViews()
	for _, card := range cards {
		c.renderer.CreateCardView(card)
	}
	c.renderer.MarkSynced()

	c.logger.Info("Cards loaded", logger.Int("count", len(cards)))
	return nil
}

// Capture stores a new card for a finished text selection.
// Empty text and already stored tuples are rejected without an error.
func (c *Controller) Capture(ctx context.Context, text, url, title string) (CaptureResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	card, ok := domain.NewCard(text, url, title)
	if !ok {
		return CaptureResult{Reason: ReasonEmptyText}, nil
	}

	exists, err := c.repo.Exists(ctx, card)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("failed to check card: %w", err)
	}
	if exists {
		c.logger.Debug("Capture skipped, card already stored", logger.String("card", card.Key()))
		return CaptureResult{Reason: ReasonDuplicate}, nil
	}

	if err := c.repo.Add(ctx, card); err != nil {
		return CaptureResult{}, err
	}
	v := c.renderer.CreateCardView(card)

	c.logger.Debug("Card captured",
		logger.String("card", card.Key()),
		logger.String("view", v.ID))
	return CaptureResult{Created: true, View: &v}, nil
}

// Click applies a click on a rendered card. Clicks on the card's link pass through.
// Selecting a card deselects every other one without touching the store.
func (c *Controller) Click(ctx context.Context, viewID string, target domain.ClickTarget) (view.CardView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.renderer.Get(viewID)
	if !ok {
		return view.CardView{}, fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	}

	t := domain.Toggle(v.State, target)
	switch {
	case t.Selected():
		for _, other := range c.renderer.All() {
			if other.ID != v.ID && other.State == domain.Selected {
				c.renderer.SetState(other.ID, domain.Unselected)
			}
		}
	case t.Deselected():
		if c.opts.ReaddOnDeselect {
			if err := c.repo.Add(ctx, v.Card); err != nil {
				return v, fmt.Errorf("failed to re-add deselected card: %w", err)
			}
			c.logger.Debug("Deselected card re-added", logger.String("card", v.Card.Key()))
		}
	}

	if t.Changed() {
		c.renderer.SetState(v.ID, t.To)
		v.State = t.To
	}
	return v, nil
}

// RemoveSelected removes the selected card from the store (every entry with its
// tuple) and drops its view. It reports false when nothing is selected.
func (c *Controller) RemoveSelected(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.renderer.FirstSelected()
	if !ok {
		return false, nil
	}

	if err := c.repo.Remove(ctx, v.Card); err != nil {
		return false, err
	}
	c.renderer.RemoveCardView(v.ID)

	c.logger.Debug("Card removed", logger.String("card", v.Card.Key()))
	return true, nil
}

// RemoveAll clears the store and every view.
func (c *Controller) RemoveAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.Clear(ctx); err != nil {
		return err
	}
	c.renderer.ClearAllViews()

	c.logger.Info("All cards removed")
	return nil
}

// Resync rebuilds the views from the store. The selection survives on the first
// view whose card matches the previously selected one.
func (c *Controller) Resync(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to resync cards: %w", err)
	}

	if sameCards(c.renderer.All(), cards) {
		c.renderer.MarkSynced()
		return nil
	}

	selected, hadSelection := c.renderer.FirstSelected()

	c.renderer.ClearAllViews()
	reselected := false
	for _, card := range cards {
		v := c.renderer.CreateCardView(card)
		if hadSelection && !reselected && card.SameIdentity(selected.Card) {
			c.renderer.SetState(v.ID, domain.Selected)
			reselected = true
		}
	}
	c.renderer.MarkSynced()

	c.logger.Debug("Cards resynced",
		logger.Int("count", len(cards)),
		logger.Bool("selection_kept", reselected))
	return nil
}

// Views returns the rendered cards in order.
func (c *Controller) Views() []view.CardView {
	return c.renderer.All()
}

// sameCards reports whether views already render cards, in the same order.
// View IDs stay stable across resyncs that find nothing new.
func sameCards(views []view.CardView, cards []domain.Card) bool {
	if len(views) != len(cards) {
		return false
	}
	for i := range views {
		if !views[i].Card.SameIdentity(cards[i]) {
			return false
		}
	}
	return true
}
