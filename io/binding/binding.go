// SPDX-License-Identifier: Unlicense OR MIT

// Package binding implements platform key-binding actions. Actions are
// resolved from raw key chords by the host's key-binding layer and delivered
// as events, so handlers need not know the platform's shortcut conventions.
package binding

// Action is a platform navigation or editing action.
type Action uint8

const (
	// MoveBackwardLine moves the caret or selection to the start of the
	// line (Home on most platforms).
	MoveBackwardLine Action = iota
	// MoveForwardLine moves the caret or selection to the end of the
	// line (End on most platforms).
	MoveForwardLine
	// MoveBackwardWord moves one word backward.
	MoveBackwardWord
	// MoveForwardWord moves one word forward.
	MoveForwardWord
	// SelectAll selects all content.
	SelectAll
)

// Event is generated when a key chord bound to an Action is pressed or
// released.
type Event struct {
	Action Action
	// Pressed is true for the press half of the binding and false for
	// the release.
	Pressed bool
}

func (a Action) String() string {
	switch a {
	case MoveBackwardLine:
		return "MoveBackwardLine"
	case MoveForwardLine:
		return "MoveForwardLine"
	case MoveBackwardWord:
		return "MoveBackwardWord"
	case MoveForwardWord:
		return "MoveForwardWord"
	case SelectAll:
		return "SelectAll"
	default:
		panic("unknown action")
	}
}

func (Event) ImplementsEvent() {}
