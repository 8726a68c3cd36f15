// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the interface shared by all input events.
// Events are delivered to handlers by position, through the scene's
// hit chain, or by focus; see package veilui.org/io/input.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
