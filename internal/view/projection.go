package view

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/notary/internal/domain"
)

// CardView is one rendered card in the sidebar.
type CardView struct {
	ID        string                `json:"id"`
	Card      domain.Card           `json:"card"`
	State     domain.SelectionState `json:"state"`
	CreatedAt time.Time             `json:"created_at"`
}

// Projection is the in-memory sidebar: an ordered list of card views.
// It is a transient mirror of the card store, never the source of truth.
type Projection struct {
	mu       sync.RWMutex
	views    []*CardView          // render order
	byID     map[string]*CardView // ID -> view
	lastSync time.Time            // last full rebuild from the store
	now      func() time.Time
}

// NewProjection creates an empty projection.
func NewProjection() *Projection {
	return &Projection{
		byID: make(map[string]*CardView),
		now:  time.Now,
	}
}

// CreateCardView appends a view for card in unselected state.
func (p *Projection) CreateCardView(card domain.Card) CardView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := &CardView{
		ID:        uuid.NewString(),
		Card:      card,
		State:     domain.Unselected,
		CreatedAt: p.now(),
	}
	p.views = append(p.views, v)
	p.byID[v.ID] = v
	return *v
}

// RemoveCardView deletes the view with id. Returns false when it is unknown.
func (p *Projection) RemoveCardView(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byID[id]; !ok {
		return false
	}
	delete(p.byID, id)
	for i, v := range p.views {
		if v.ID == id {
			p.views = append(p.views[:i], p.views[i+1:]...)
			break
		}
	}
	return true
}

// ClearAllViews drops every view.
func (p *Projection) ClearAllViews() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.views = nil
	p.byID = make(map[string]*CardView)
}

// MarkSynced records a full rebuild from the store.
func (p *Projection) MarkSynced() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastSync = p.now()
}

// Get returns a copy of the view with id.
func (p *Projection) Get(id string) (CardView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.byID[id]
	if !ok {
		return CardView{}, false
	}
	return *v, true
}

// All returns copies of every view in render order.
func (p *Projection) All() []CardView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]CardView, 0, len(p.views))
	for _, v := range p.views {
		out = append(out, *v)
	}
	return out
}

// FirstSelected returns the first selected view in render order.
func (p *Projection) FirstSelected() (CardView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, v := range p.views {
		if v.State == domain.Selected {
			return *v, true
		}
	}
	return CardView{}, false
}

// SetState changes the selection state of a view. Returns false when id is unknown.
func (p *Projection) SetState(id string, state domain.SelectionState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.byID[id]
	if !ok {
		return false
	}
	v.State = state
	return true
}

// Count returns the number of views.
func (p *Projection) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.views)
}

// LastSync returns when the projection was last rebuilt from the store.
func (p *Projection) LastSync() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.lastSync
}
