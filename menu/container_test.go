// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"testing"

	"veilui.org/f32"
	"veilui.org/io/binding"
	"veilui.org/io/input"
	"veilui.org/io/key"
	"veilui.org/io/pointer"
	"veilui.org/scene"
)

// pane is a content element optionally supplying context items.
type pane struct {
	node  scene.Node
	items []Item
}

func (p *pane) Node() *scene.Node { return &p.node }

func (p *pane) ContextItems() []Item { return p.items }

func newPane(pos, size f32.Point, items []Item) *pane {
	p := &pane{items: items}
	p.node.SetPos(pos)
	p.node.SetSize(size)
	return p
}

// plain is a content element without the context-menu capability.
type plain struct {
	node scene.Node
}

func (p *plain) Node() *scene.Node { return &p.node }

// stubMenu is a Menu with a fixed size and call accounting.
type stubMenu struct {
	node   scene.Node
	items  []Item
	shown  int
	hidden int
}

func (m *stubMenu) Node() *scene.Node  { return &m.node }
func (m *stubMenu) SetItems(it []Item) { m.items = it }
func (m *stubMenu) Show()              { m.node.SetVisible(true); m.shown++ }
func (m *stubMenu) Hide()              { m.node.SetVisible(false); m.hidden++ }

type fixture struct {
	c    *Container
	r    *input.Router
	menu *stubMenu
	made int
}

// newFixture builds a container acting as tree root, sized 800x600, with a
// 200x100 stub menu.
func newFixture() *fixture {
	f := &fixture{menu: new(stubMenu)}
	f.menu.node.SetSize(f32.Pt(200, 100))
	f.c = NewContainer()
	f.c.CreateMenu = func() Menu {
		f.made++
		return f.menu
	}
	f.c.Node().SetSize(f32.Pt(800, 600))
	f.r = input.NewRouter(f.c)
	f.c.Register(f.r)
	return f
}

func (f *fixture) rightClick(p f32.Point) bool {
	return f.r.Queue(pointer.Event{
		Kind:     pointer.Press,
		Buttons:  pointer.ButtonSecondary,
		Position: p,
	})
}

func (f *fixture) leftPress(p f32.Point) bool {
	return f.r.Queue(pointer.Event{
		Kind:     pointer.Press,
		Buttons:  pointer.ButtonPrimary,
		Position: p,
	})
}

func item(label string) Item { return Item{Label: label} }

func TestOpenOnSecondaryPress(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Pt(100, 100), f32.Pt(300, 200), []Item{item("copy")})
	f.c.Add(target)

	if !f.rightClick(f32.Pt(150, 150)) {
		t.Fatal("opening press not consumed")
	}
	if f.c.State() != Open {
		t.Fatal("menu not open after secondary press on provider")
	}
	if f.c.target != scene.Drawable(target) {
		t.Errorf("wrong target resolved: %T", f.c.target)
	}
	if want := scene.GlobalToLocal(target, f32.Pt(150, 150)); f.c.anchor != want {
		t.Errorf("anchor %v, want %v", f.c.anchor, want)
	}
	if len(f.menu.items) != 1 || f.menu.items[0].Label != "copy" {
		t.Errorf("menu items not assigned: %v", f.menu.items)
	}
	if f.menu.shown != 1 {
		t.Errorf("menu shown %d times, want 1", f.menu.shown)
	}
}

func TestResolverPrefersInnermost(t *testing.T) {
	f := newFixture()
	outer := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("outer")})
	inner := newPane(f32.Pt(10, 10), f32.Pt(100, 100), []Item{item("inner")})
	f.c.Add(outer)
	outer.node.Attach(outer, inner)

	f.rightClick(f32.Pt(50, 50))
	if f.c.target != scene.Drawable(inner) {
		t.Error("innermost provider not preferred")
	}
}

func TestResolverNilFallsThrough(t *testing.T) {
	f := newFixture()
	back := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("back")})
	front := newPane(f32.Pt(10, 10), f32.Pt(100, 100), nil)
	f.c.Add(back)
	f.c.Add(front)

	f.rightClick(f32.Pt(50, 50))
	if f.c.State() != Open || f.c.target != scene.Drawable(back) {
		t.Error("nil item list did not fall through to deeper candidate")
	}
}

func TestResolverEmptyShortCircuits(t *testing.T) {
	f := newFixture()
	// Hit order is: nilPane, emptyPane, fullPane. The empty list must end
	// the search; the populated candidate behind it must never win.
	fullPane := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("never")})
	emptyPane := newPane(f32.Pt(10, 10), f32.Pt(100, 100), []Item{})
	nilPane := newPane(f32.Pt(20, 20), f32.Pt(50, 50), nil)
	f.c.Add(fullPane)
	f.c.Add(emptyPane)
	f.c.Add(nilPane)

	if f.rightClick(f32.Pt(40, 40)) {
		t.Error("press with no usable target reported handled")
	}
	if f.c.State() == Open {
		t.Fatal("menu opened from an empty item list")
	}

	// An empty candidate also closes an existing menu.
	f.rightClick(f32.Pt(400, 400)) // over fullPane only
	if f.c.State() != Open {
		t.Fatal("setup: menu did not open over populated provider")
	}
	if f.rightClick(f32.Pt(40, 40)) {
		t.Error("closing press reported handled")
	}
	if f.c.State() != Closed {
		t.Error("empty candidate did not close the open menu")
	}
}

func TestNoProviderNoMenu(t *testing.T) {
	f := newFixture()
	f.c.Add(&plain{})

	if f.rightClick(f32.Pt(50, 50)) {
		t.Error("press over plain content reported handled")
	}
	if f.c.State() != Closed {
		t.Error("menu opened with no provider")
	}
	if f.made != 0 {
		t.Error("menu instance created without ever opening")
	}
}

func TestPlacementScenario(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)

	// Raw position (750, 550) with a 200x100 popup in an 800x600
	// container: both trailing overflows are fully corrected.
	f.rightClick(f32.Pt(750, 550))
	if got, want := f.menu.node.Pos(), f32.Pt(600, 500); got != want {
		t.Errorf("menu position %v, want %v", got, want)
	}
}

func TestPlacementTracksTarget(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Pt(100, 100), f32.Pt(200, 200), []Item{item("a")})
	f.c.Add(target)

	f.rightClick(f32.Pt(150, 150))
	if got := f.menu.node.Pos(); got != f32.Pt(150, 150) {
		t.Fatalf("initial position %v", got)
	}
	// The anchor is fixed in the target's space, so moving the target
	// moves the menu.
	target.node.SetPos(f32.Pt(200, 100))
	f.r.Frame()
	if got := f.menu.node.Pos(); got != f32.Pt(250, 150) {
		t.Errorf("menu did not track target: %v", got)
	}
	// Tracking is still clamped at the container's edges.
	target.node.SetPos(f32.Pt(700, 550))
	f.r.Frame()
	if got := f.menu.node.Pos(); got != f32.Pt(600, 500) {
		t.Errorf("tracked position not clamped: %v", got)
	}
}

func TestOtherButtonCloses(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	if f.leftPress(f32.Pt(400, 400)) {
		t.Error("closing press reported handled")
	}
	if f.c.State() != Closed {
		t.Fatal("left press did not close the menu")
	}
	if f.c.target != nil || f.c.anchor != (f32.Point{}) {
		t.Error("target or anchor retained after close")
	}
	if f.menu.hidden == 0 {
		t.Error("menu widget not hidden")
	}
}

func TestScrollCloses(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	handled := f.r.Queue(pointer.Event{
		Kind:     pointer.Scroll,
		Position: f32.Pt(100, 100),
		Scroll:   f32.Pt(0, 10),
	})
	if handled {
		t.Error("scroll consumed; it must reach underlying content")
	}
	if f.c.State() != Closed {
		t.Error("scroll did not close the menu")
	}
}

func TestNavigationKeysClose(t *testing.T) {
	for _, name := range []key.Name{key.NamePageUp, key.NamePageDown} {
		f := newFixture()
		target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
		f.c.Add(target)
		f.rightClick(f32.Pt(100, 100))

		if f.r.Queue(key.Event{Name: name, State: key.Press}) {
			t.Errorf("%s consumed", name)
		}
		if f.c.State() != Closed {
			t.Errorf("%s did not close the menu", name)
		}
	}
}

func TestUnrelatedKeysPassThrough(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	f.r.Queue(key.Event{Name: key.NameEscape, State: key.Press})
	f.r.Queue(key.Event{Name: key.NamePageDown, State: key.Release})
	if f.c.State() != Open {
		t.Error("unrelated key input closed the menu")
	}
}

func TestBindingActionsClose(t *testing.T) {
	for _, action := range []binding.Action{binding.MoveBackwardLine, binding.MoveForwardLine} {
		f := newFixture()
		target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
		f.c.Add(target)
		f.rightClick(f32.Pt(100, 100))

		// The release half is a no-op.
		f.r.Queue(binding.Event{Action: action, Pressed: false})
		if f.c.State() != Open {
			t.Fatalf("%s release closed the menu", action)
		}
		f.r.Queue(binding.Event{Action: action, Pressed: true})
		if f.c.State() != Closed {
			t.Errorf("%s press did not close the menu", action)
		}
	}
}

func TestDetachedTargetCloses(t *testing.T) {
	f := newFixture()
	holder := newPane(f32.Point{}, f32.Pt(800, 600), nil)
	target := newPane(f32.Pt(50, 50), f32.Pt(100, 100), []Item{item("a")})
	f.c.Add(holder)
	holder.node.Attach(holder, target)
	f.rightClick(f32.Pt(80, 80))
	if f.c.State() != Open {
		t.Fatal("setup: menu not open")
	}

	holder.node.Detach(target)
	f.r.Frame()
	if f.c.State() != Closed {
		t.Error("detached target did not close the menu on the next frame")
	}
	if f.c.target != nil {
		t.Error("target retained after forced close")
	}
}

func TestReparentedTargetCloses(t *testing.T) {
	// The validity check resolves the target's nearest owning container.
	// Moving the target under a different container closes the menu even
	// though it is still attached to a tree.
	f := newFixture()
	target := newPane(f32.Pt(50, 50), f32.Pt(100, 100), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(80, 80))
	if f.c.State() != Open {
		t.Fatal("setup: menu not open")
	}

	other := NewContainer()
	other.Add(target)
	f.r.Frame()
	if f.c.State() != Closed {
		t.Error("target owned by another container did not close the menu")
	}
}

func TestHiddenTargetCloses(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Pt(50, 50), f32.Pt(100, 100), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(80, 80))

	target.node.SetVisible(false)
	f.r.Frame()
	if f.c.State() != Closed {
		t.Error("hidden target did not close the menu on the next frame")
	}
}

func TestHiddenAncestorCloses(t *testing.T) {
	f := newFixture()
	holder := newPane(f32.Point{}, f32.Pt(800, 600), nil)
	target := newPane(f32.Pt(50, 50), f32.Pt(100, 100), []Item{item("a")})
	f.c.Add(holder)
	holder.node.Attach(holder, target)
	f.rightClick(f32.Pt(80, 80))

	holder.node.SetVisible(false)
	f.r.Frame()
	if f.c.State() != Closed {
		t.Error("hidden ancestor did not close the menu")
	}
}

func TestCloseMenuPublic(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	f.c.CloseMenu()
	if f.c.State() != Closed || f.c.target != nil {
		t.Error("CloseMenu did not reset state")
	}
	// Closing a closed container is a no-op.
	f.c.CloseMenu()
	if f.c.State() != Closed {
		t.Error("repeated close changed state")
	}
}

func TestReopenReusesMenu(t *testing.T) {
	f := newFixture()
	a := newPane(f32.Point{}, f32.Pt(400, 600), []Item{item("a")})
	b := newPane(f32.Pt(400, 0), f32.Pt(400, 600), []Item{item("b")})
	f.c.Add(a)
	f.c.Add(b)

	f.rightClick(f32.Pt(100, 100))
	f.rightClick(f32.Pt(500, 100))
	if f.made != 1 {
		t.Errorf("CreateMenu invoked %d times, want 1", f.made)
	}
	if f.c.State() != Open || f.c.target != scene.Drawable(b) {
		t.Error("second open did not switch target")
	}
	if len(f.menu.items) != 1 || f.menu.items[0].Label != "b" {
		t.Errorf("items not replaced: %v", f.menu.items)
	}
}

func TestPressOnMenuDoesNotClose(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	// The stub menu occupies (100,100)-(300,200). The menu widget sits in
	// front of the overlay, so presses on it are its own business.
	f.leftPress(f32.Pt(150, 150))
	if f.c.State() != Open {
		t.Error("press on the menu itself closed it")
	}
	f.rightClick(f32.Pt(150, 150))
	if f.c.State() != Open {
		t.Error("secondary press on the menu reopened or closed it")
	}
}

func TestMenuActionAlsoCloses(t *testing.T) {
	f := newFixture()
	var invoked int
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{{
		Label:  "copy",
		Action: func() { invoked++ },
	}})
	f.c.Add(target)
	f.rightClick(f32.Pt(100, 100))

	// The container wraps assigned item actions so activation closes the
	// menu.
	f.menu.items[0].Action()
	if invoked != 1 {
		t.Fatalf("wrapped action invoked underlying action %d times", invoked)
	}
	if f.c.State() != Closed {
		t.Error("item activation did not close the menu")
	}
}

func TestContentSizingFollowsContainer(t *testing.T) {
	f := newFixture()
	f.r.Frame()
	if got := f.c.content.node.Size(); got != f32.Pt(800, 600) {
		t.Fatalf("content size %v, want container size", got)
	}

	// A horizontally relative-sized container stops driving the content's
	// width.
	f.c.SetSizing(AxisX, AxesNone)
	f.c.Node().SetSize(f32.Pt(400, 300))
	f.r.Frame()
	if got := f.c.content.node.Size(); got != f32.Pt(800, 300) {
		t.Errorf("content size %v, want (800,300)", got)
	}

	// Auto-sized axes are excluded the same way.
	f.c.SetSizing(AxesNone, AxesBoth)
	f.c.Node().SetSize(f32.Pt(200, 200))
	f.r.Frame()
	if got := f.c.content.node.Size(); got != f32.Pt(800, 300) {
		t.Errorf("content size %v, want unchanged (800,300)", got)
	}
}

func TestFrameWhileClosedIsNoop(t *testing.T) {
	f := newFixture()
	target := newPane(f32.Point{}, f32.Pt(800, 600), []Item{item("a")})
	f.c.Add(target)

	f.r.Frame()
	if f.c.State() != Closed || f.made != 0 {
		t.Error("frame pass affected a closed container")
	}
}
