// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"golang.org/x/image/math/fixed"

	"veilui.org/f32"
	"veilui.org/gesture"
	"veilui.org/io/event"
	"veilui.org/io/pointer"
	"veilui.org/scene"
	"veilui.org/text"
)

// Popup is the built-in Menu implementation: a vertical list of items sized
// from its labels. Items activate on a completed primary-button click.
type Popup struct {
	// TextSize is the label size in pixels per em.
	TextSize fixed.Int26_6
	// Inset is the horizontal and vertical padding around each label.
	Inset f32.Point

	node   scene.Node
	shaper *text.Shaper
}

// NewPopup creates a hidden, empty popup measuring its labels with shaper.
func NewPopup(shaper *text.Shaper) *Popup {
	p := &Popup{
		TextSize: fixed.I(16),
		Inset:    f32.Pt(12, 6),
		shaper:   shaper,
	}
	p.node.SetVisible(false)
	return p
}

// Node implements scene.Drawable.
func (p *Popup) Node() *scene.Node { return &p.node }

// Show makes the popup visible.
func (p *Popup) Show() { p.node.SetVisible(true) }

// Hide makes the popup invisible.
func (p *Popup) Hide() { p.node.SetVisible(false) }

// SetItems replaces the popup's items and remeasures it. The popup's width
// is that of the widest label plus insets; its height stacks one row per
// item.
func (p *Popup) SetItems(items []Item) {
	for _, c := range append([]scene.Drawable(nil), p.node.Children()...) {
		p.node.Detach(c)
	}
	var (
		width   float32
		rowH    float32
		extents = make([]text.Extents, len(items))
	)
	for i, it := range items {
		e := p.shaper.Measure(p.TextSize, it.Label)
		extents[i] = e
		if w := text.ToPx(e.Advance); w > width {
			width = w
		}
		if h := text.ToPx(e.Height()); h > rowH {
			rowH = h
		}
	}
	width += 2 * p.Inset.X
	rowH += 2 * p.Inset.Y
	for i, it := range items {
		r := &row{item: it, label: extents[i]}
		r.node.SetPos(f32.Pt(0, float32(i)*rowH))
		r.node.SetSize(f32.Pt(width, rowH))
		p.node.Attach(p, r)
	}
	p.node.SetSize(f32.Pt(width, rowH*float32(len(items))))
}

// row is a single popup entry.
type row struct {
	node  scene.Node
	click gesture.Click
	item  Item
	label text.Extents
}

func (r *row) Node() *scene.Node { return &r.node }

// HandleEvent implements input.Handler. Completed clicks activate the
// item; any other press on the row is swallowed so it cannot reach content
// behind the menu.
func (r *row) HandleEvent(e event.Event) bool {
	pe, ok := e.(pointer.Event)
	if !ok {
		return false
	}
	local := scene.GlobalToLocal(r, pe.Position)
	ev, acted := r.click.Update(pe, local.In(r.node.Bounds()))
	if !acted {
		return pe.Kind == pointer.Press
	}
	switch ev.Type {
	case gesture.TypeClick:
		if r.item.Action != nil {
			r.item.Action()
		}
		return true
	case gesture.TypePress:
		return true
	default:
		return false
	}
}
