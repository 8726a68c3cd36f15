// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"veilui.org/f32"
	"veilui.org/font/gofont"
	"veilui.org/io/binding"
	"veilui.org/io/event"
	"veilui.org/io/input"
	"veilui.org/io/key"
	"veilui.org/io/pointer"
	"veilui.org/scene"
	"veilui.org/text"
)

// Container manages content that may spawn context menus. It acts as a
// transparent overlay with first refusal on input: register it with the
// scene's router via Register, add content with Add, and call the router's
// Frame once per frame after the tree's transforms have been updated.
//
// The zero value is not valid; use NewContainer.
type Container struct {
	// CreateMenu returns the popup widget instance used by the
	// container. It is consulted once, when the first menu opens. If
	// nil, a Popup using the Go fonts is created.
	CreateMenu func() Menu

	node    scene.Node
	content *contentSlot
	menu    Menu

	relativeAxes Axes
	autoAxes     Axes

	state  State
	target provider
	anchor f32.Point

	// chain is the scratch buffer for target resolution.
	chain []scene.Drawable
}

// contentSlot is the child the container's consumers populate. Its sizing
// follows the container on the axes recorded in follow.
type contentSlot struct {
	node   scene.Node
	follow Axes
}

func (c *contentSlot) Node() *scene.Node { return &c.node }

// NewContainer creates an empty container.
func NewContainer() *Container {
	c := new(Container)
	c.content = &contentSlot{follow: AxesBoth}
	c.node.Attach(c, c.content)
	return c
}

// Node implements scene.Drawable.
func (c *Container) Node() *scene.Node { return &c.node }

// Add attaches child to the container's content slot.
func (c *Container) Add(child scene.Drawable) {
	c.content.node.Attach(c.content, child)
}

// Register inserts the container into r's overlay layer, giving it first
// refusal on input ahead of its managed content, and enrolls its per-frame
// pass.
func (c *Container) Register(r *input.Router) {
	r.InsertOverlay(c)
}

// SetSizing records the container's sizing-axis configuration. The content
// slot follows the container's size on every axis that is neither
// relative-sized nor auto-sized.
func (c *Container) SetSizing(relative, auto Axes) {
	c.relativeAxes = relative
	c.autoAxes = auto
	c.content.follow = AxesBoth &^ (relative | auto)
}

// State returns the lifecycle state of the container's menu.
func (c *Container) State() State { return c.state }

// CloseMenu closes any open menu. The current target and anchor are
// discarded together with the state transition.
func (c *Container) CloseMenu() {
	c.state = Closed
	c.target = nil
	c.anchor = f32.Point{}
	if c.menu != nil {
		c.menu.Hide()
	}
}

// HandleEvent implements input.Handler. It arbitrates menu lifecycle; it
// consumes only the secondary press that opens a menu, so dismissing input
// still reaches the underlying content.
func (c *Container) HandleEvent(e event.Event) bool {
	switch e := e.(type) {
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			return c.handlePress(e)
		case pointer.Scroll:
			c.CloseMenu()
		}
	case key.Event:
		if e.State == key.Press {
			switch e.Name {
			case key.NamePageUp, key.NamePageDown:
				c.CloseMenu()
			}
		}
	case binding.Event:
		if e.Pressed {
			switch e.Action {
			case binding.MoveBackwardLine, binding.MoveForwardLine:
				c.CloseMenu()
			}
		}
	}
	return false
}

func (c *Container) handlePress(e pointer.Event) bool {
	// Presses on the open menu belong to the menu widget itself, which
	// sits in front of the overlay.
	if c.state == Open && c.menuContains(e.Position) {
		return false
	}
	if e.Buttons.Contain(pointer.ButtonSecondary) {
		target, items := c.resolveTarget(e.Position)
		if target != nil && len(items) > 0 {
			c.openMenu(target, items, e.Position)
			return true
		}
		c.CloseMenu()
		return false
	}
	c.CloseMenu()
	return false
}

// resolveTarget walks the hit chain under the container for the global
// point p and returns the first element whose ContextItems are non-nil,
// with those items. An element returning nil items declines and the search
// continues; a non-nil result, even an empty one, ends the search.
func (c *Container) resolveTarget(p f32.Point) (provider, []Item) {
	c.chain = scene.HitChain(c, p, c.chain[:0])
	for _, d := range c.chain {
		t, ok := d.(provider)
		if !ok {
			continue
		}
		if items := t.ContextItems(); items != nil {
			return t, items
		}
	}
	return nil, nil
}

func (c *Container) openMenu(target provider, items []Item, global f32.Point) {
	if c.menu == nil {
		create := c.CreateMenu
		if create == nil {
			create = func() Menu {
				return NewPopup(text.NewShaper(gofont.Collection()...))
			}
		}
		c.menu = create()
		c.menu.Hide()
		c.node.Attach(c, c.menu)
	}
	// Activating any item also closes the menu.
	wrapped := make([]Item, len(items))
	for i, it := range items {
		it := it
		wrapped[i] = Item{
			Label: it.Label,
			Action: func() {
				if it.Action != nil {
					it.Action()
				}
				c.CloseMenu()
			},
		}
	}
	c.menu.SetItems(wrapped)
	c.target = target
	c.anchor = scene.GlobalToLocal(target, global)
	c.state = Open
	c.menu.Show()
	c.place()
}

// Frame implements input.FrameHandler. It runs once per frame, after the
// tree's transform updates, so placement always observes the current
// frame's positions.
func (c *Container) Frame() {
	c.layoutContent()
	if c.state != Open {
		return
	}
	if c.target == nil || !scene.Present(c.target) {
		c.CloseMenu()
		return
	}
	if owner, ok := scene.Ancestor[*Container](c.target); !ok || owner != c {
		c.CloseMenu()
		return
	}
	c.place()
}

// place positions the menu at the anchor mapped into the container's space,
// clamped to the container's bounds.
func (c *Container) place() {
	raw := scene.ToSpaceOf(c.target, c, c.anchor)
	c.menu.Node().SetPos(position(raw, c.node.Size(), c.menu.Node().Size()))
}

// position clamps a raw menu position to the container. The trailing edges
// are resolved first, then the leading ones; each correction is capped at
// the popup's own extent so an oversized popup is never pushed past the
// opposite edge.
func position(pos, container, popup f32.Point) f32.Point {
	if overflow := pos.X + popup.X - container.X; overflow > 0 {
		pos.X -= clamp(overflow, 0, popup.X)
	}
	if overflow := pos.Y + popup.Y - container.Y; overflow > 0 {
		pos.Y -= clamp(overflow, 0, popup.Y)
	}
	if pos.X < 0 {
		pos.X += clamp(-pos.X, 0, popup.X)
	}
	if pos.Y < 0 {
		pos.Y += clamp(-pos.Y, 0, popup.Y)
	}
	return pos
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Container) menuContains(global f32.Point) bool {
	if c.menu == nil || !c.menu.Node().Visible() {
		return false
	}
	return scene.GlobalToLocal(c.menu, global).In(c.menu.Node().Bounds())
}

// layoutContent re-applies the content slot's derived sizing.
func (c *Container) layoutContent() {
	sz := c.content.node.Size()
	if c.content.follow.Contain(AxisX) {
		sz.X = c.node.Size().X
	}
	if c.content.follow.Contain(AxisY) {
		sz.Y = c.node.Size().Y
	}
	c.content.node.SetSize(sz)
}
