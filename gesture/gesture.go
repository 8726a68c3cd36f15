// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures.

Gestures accept low level pointer Events and detect higher level actions
such as clicks.
*/
package gesture

import (
	"veilui.org/f32"
	"veilui.org/io/key"
	"veilui.org/io/pointer"
)

// Click detects click gestures in the form of ClickEvents.
type Click struct {
	// state tracks the gesture state.
	state ClickState
	pid   pointer.ID
}

type ClickState uint8

const (
	// StateNormal is the default click state.
	StateNormal ClickState = iota
	// StatePressed is when a pointer is pressed.
	StatePressed
)

// ClickEvent represents a click action, either a TypePress for the
// beginning of a click or a TypeClick for a completed click.
type ClickEvent struct {
	Type      ClickType
	Position  f32.Point
	Source    pointer.Source
	Modifiers key.Modifiers
}

type ClickType uint8

const (
	// TypePress is reported for the first pointer press.
	TypePress ClickType = iota
	// TypeClick is reported when a click action is complete.
	TypeClick
	// TypeCancel is reported when the gesture is cancelled.
	TypeCancel
)

// State returns the click state.
func (c *Click) State() ClickState {
	return c.state
}

// Update processes e with inBounds reporting whether the event position
// lies within the gesture's area. It returns a ClickEvent and true when the
// event advanced the gesture.
func (c *Click) Update(e pointer.Event, inBounds bool) (ClickEvent, bool) {
	switch e.Kind {
	case pointer.Press:
		if !e.Buttons.Contain(pointer.ButtonPrimary) || !inBounds {
			return ClickEvent{}, false
		}
		c.state = StatePressed
		c.pid = e.PointerID
		return ClickEvent{
			Type:      TypePress,
			Position:  e.Position,
			Source:    e.Source,
			Modifiers: e.Modifiers,
		}, true
	case pointer.Release:
		if c.state != StatePressed || e.PointerID != c.pid {
			return ClickEvent{}, false
		}
		c.state = StateNormal
		if !inBounds {
			return ClickEvent{Type: TypeCancel}, true
		}
		return ClickEvent{
			Type:      TypeClick,
			Position:  e.Position,
			Source:    e.Source,
			Modifiers: e.Modifiers,
		}, true
	case pointer.Cancel:
		if c.state != StatePressed {
			return ClickEvent{}, false
		}
		c.state = StateNormal
		return ClickEvent{Type: TypeCancel}, true
	}
	return ClickEvent{}, false
}
