package domain

import "fmt"

// SelectionState is the UI-local state of a rendered card.
// It is never persisted with the Card.
type SelectionState int

const (
	Unselected SelectionState = iota
	Selected
)

func (s SelectionState) String() string {
	switch s {
	case Selected:
		return "selected"
	default:
		return "unselected"
	}
}

func (s SelectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClickTarget says which part of a rendered card received a click.
type ClickTarget string

const (
	// TargetCard is the card body.
	TargetCard ClickTarget = "card"
	// TargetLink is the embedded source link. Link clicks navigate and never toggle.
	TargetLink ClickTarget = "link"
)

// ParseClickTarget maps client input to a ClickTarget. Empty means the card body.
func ParseClickTarget(s string) (ClickTarget, error) {
	switch ClickTarget(s) {
	case "", TargetCard:
		return TargetCard, nil
	case TargetLink:
		return TargetLink, nil
	default:
		return "", fmt.Errorf("unknown click target %q", s)
	}
}

// Transition is the outcome of one click on a rendered card.
type Transition struct {
	From SelectionState
	To   SelectionState
}

// Toggle computes the next state for a click on target.
//
//	unselected --card--> selected
//	selected   --card--> unselected
//	any        --link--> unchanged
func Toggle(current SelectionState, target ClickTarget) Transition {
	if target == TargetLink {
		return Transition{From: current, To: current}
	}
	if current == Selected {
		return Transition{From: Selected, To: Unselected}
	}
	return Transition{From: Unselected, To: Selected}
}

// Changed reports whether the click moved the card to another state.
func (t Transition) Changed() bool { return t.From != t.To }

// Selected reports an unselected -> selected move.
func (t Transition) Selected() bool { return t.From == Unselected && t.To == Selected }

// Deselected reports a selected -> unselected move.
func (t Transition) Deselected() bool { return t.From == Selected && t.To == Unselected }
