// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input routes events from an event source to the elements of a scene
tree.

Pointer events are delivered along the hit chain for their position,
innermost element first. Key and binding events are delivered to the focused
handler. A handler consumes an event by returning true, stopping further
delivery.

Overlay handlers registered with InsertOverlay receive every event before
any tree content, regardless of the content's own input handling. They form
an explicit priority layer in the routing order and are used by managers,
such as context-menu containers, that need first refusal on input.
*/
package input

import (
	"golang.org/x/exp/slices"

	"veilui.org/io/binding"
	"veilui.org/io/event"
	"veilui.org/io/key"
	"veilui.org/io/pointer"
	"veilui.org/scene"
)

// Handler processes events delivered by a Router. HandleEvent reports
// whether the event was consumed.
type Handler interface {
	HandleEvent(e event.Event) bool
}

// FrameHandler is an optional capability of overlay handlers that need a
// per-frame pass after the tree's transforms have been updated.
type FrameHandler interface {
	Frame()
}

// Router delivers events to a scene tree and its overlay handlers. Events
// are handled synchronously within Queue; the router performs no internal
// queueing. A Router must only be used from a single goroutine.
type Router struct {
	root     scene.Drawable
	overlays []Handler
	focus    Handler

	// grabs maps pointers to the handler that consumed their press, so
	// the matching release or cancel reaches the same handler even when
	// the pointer has left it.
	grabs map[pointer.ID]Handler

	// chain is the scratch buffer for hit chains.
	chain []scene.Drawable
}

// NewRouter creates a router delivering events to the tree rooted at root.
func NewRouter(root scene.Drawable) *Router {
	return &Router{root: root}
}

// InsertOverlay registers h ahead of tree content in the routing order.
// Overlays inserted later are consulted first.
func (r *Router) InsertOverlay(h Handler) {
	r.overlays = append(r.overlays, h)
}

// RemoveOverlay unregisters h.
func (r *Router) RemoveOverlay(h Handler) {
	if idx := slices.Index(r.overlays, h); idx != -1 {
		r.overlays = slices.Delete(r.overlays, idx, idx+1)
	}
}

// SetFocus directs key and binding events to h. A nil h clears focus.
func (r *Router) SetFocus(h Handler) {
	r.focus = h
}

// Queue delivers e and reports whether any handler consumed it.
func (r *Router) Queue(e event.Event) bool {
	for i := len(r.overlays) - 1; i >= 0; i-- {
		if r.overlays[i].HandleEvent(e) {
			return true
		}
	}
	switch e := e.(type) {
	case pointer.Event:
		return r.deliverPointer(e)
	case key.Event, binding.Event:
		if r.focus != nil {
			return r.focus.HandleEvent(e)
		}
	}
	return false
}

// Frame runs the per-frame pass of all registered overlays. It must be
// called once per frame, after the tree's transforms have been updated for
// that frame.
func (r *Router) Frame() {
	for _, h := range r.overlays {
		if fh, ok := h.(FrameHandler); ok {
			fh.Frame()
		}
	}
}

func (r *Router) deliverPointer(e pointer.Event) bool {
	if e.Kind == pointer.Release || e.Kind == pointer.Cancel {
		if h, ok := r.grabs[e.PointerID]; ok {
			delete(r.grabs, e.PointerID)
			return h.HandleEvent(e)
		}
	}
	r.chain = scene.HitChain(r.root, e.Position, r.chain[:0])
	for _, d := range r.chain {
		if h, ok := d.(Handler); ok && h.HandleEvent(e) {
			if e.Kind == pointer.Press {
				if r.grabs == nil {
					r.grabs = make(map[pointer.ID]Handler)
				}
				r.grabs[e.PointerID] = h
			}
			return true
		}
	}
	return false
}
