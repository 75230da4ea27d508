package affordance

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MrSnakeDoc/notary/internal/domain"
)

// DefaultDwell is how long a capture affordance stays usable after a selection.
const DefaultDwell = 5 * time.Second

// maxPending bounds how many unused affordances are remembered at once.
const maxPending = 256

// Pending is a capture candidate waiting for the user to activate its affordance.
type Pending struct {
	ID        string      `json:"id"`
	Card      domain.Card `json:"card"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Tracker remembers offered candidates until they are taken or the dwell elapses.
type Tracker struct {
	mu      sync.Mutex
	pending *expirable.LRU[string, Pending]
	dwell   time.Duration
	now     func() time.Time
}

// NewTracker creates a tracker. A non-positive dwell falls back to DefaultDwell.
func NewTracker(dwell time.Duration) *Tracker {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	return &Tracker{
		pending: expirable.NewLRU[string, Pending](maxPending, nil, dwell),
		dwell:   dwell,
		now:     time.Now,
	}
}

// Offer records a candidate built from the current selection.
// It returns false when the selection text is empty: no affordance is shown.
func (t *Tracker) Offer(text, url, title string) (Pending, bool) {
	card, ok := domain.NewCard(text, url, title)
	if !ok {
		return Pending{}, false
	}

	p := Pending{
		ID:        uuid.NewString(),
		Card:      card,
		ExpiresAt: t.now().Add(t.dwell),
	}
	t.pending.Add(p.ID, p)
	return p, true
}

// Take hands out a pending candidate once. Unknown or expired IDs report false.
func (t *Tracker) Take(id string) (Pending, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.pending.Get(id)
	if !ok {
		return Pending{}, false
	}
	t.pending.Remove(id)

	if t.now().After(p.ExpiresAt) {
		return Pending{}, false
	}
	return p, true
}

// Len returns the number of candidates still pending.
func (t *Tracker) Len() int {
	return t.pending.Len()
}

// Dwell returns the configured dwell time.
func (t *Tracker) Dwell() time.Duration {
	return t.dwell
}
