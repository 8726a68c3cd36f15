// SPDX-License-Identifier: Unlicense OR MIT

/*
Package menu implements context menus for a scene tree.

A Container manages a region of content. Pressing the secondary pointer
button over the content searches the hit chain for the nearest element
implementing Provider and opens a popup with its items at the press
position. The container keeps the popup within its own bounds, tracks the
resolved element as it moves, and closes the popup when input elsewhere,
scrolling, navigation keys or the element's disappearance demand it.
*/
package menu

import "veilui.org/scene"

// Item is a single context-menu entry.
type Item struct {
	Label string
	// Action is invoked when the item is activated. It may be nil.
	Action func()
}

// Provider is the capability of supplying context-menu items. Any element
// of the tree may implement it.
//
// ContextItems returns the element's current items. A nil result means the
// element declines and deeper elements in the hit chain are consulted. A
// non-nil empty result claims the menu without usable items: the search
// stops and no menu opens.
type Provider interface {
	ContextItems() []Item
}

// Menu is the popup widget driven by a Container. Size is read from the
// widget's node by the container every frame; SetItems, Show and Hide are
// called on open and close.
type Menu interface {
	scene.Drawable
	SetItems([]Item)
	Show()
	Hide()
}

// State is the lifecycle state of a container's menu.
type State uint8

const (
	// Closed is the initial state. No target or anchor is retained.
	Closed State = iota
	// Open is the state of a visible menu with a live target and anchor.
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	default:
		panic("unknown state")
	}
}

// Axes is a set of layout axes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY

	AxesNone Axes = 0
	AxesBoth Axes = AxisX | AxisY
)

// Contain reports whether a contains all axes in a2.
func (a Axes) Contain(a2 Axes) bool {
	return a&a2 == a2
}

// provider is a resolved context-menu target: an element that is both part
// of the tree and a Provider.
type provider interface {
	scene.Drawable
	Provider
}
