// SPDX-License-Identifier: Unlicense OR MIT

/*
Package scene implements a retained tree of drawable elements.

Every element embeds a Node carrying its position, size, visibility and
tree links. Positions are expressed in the parent's coordinate space;
arbitrary extra transforms (scaling, rotation) may be set per node and
compose down the tree.
*/
package scene

import (
	"golang.org/x/exp/slices"

	"veilui.org/f32"
)

// Drawable is an element of the scene tree. Implementations embed a Node
// and return it from the Node method.
type Drawable interface {
	Node() *Node
}

// HitTester is an optional capability refining an element's hit area.
// Contains receives a point in the element's local space. Elements without
// it are hit-tested against their bounds rectangle.
type HitTester interface {
	Contains(p f32.Point) bool
}

// Node is the intrinsic tree state of a Drawable.
type Node struct {
	pos    f32.Point
	size   f32.Point
	extra  f32.Affine2D
	hidden bool

	parent   Drawable
	children []Drawable
}

// Pos returns the position of the node's origin in its parent's space.
func (n *Node) Pos() f32.Point { return n.pos }

// SetPos sets the position of the node's origin in its parent's space.
func (n *Node) SetPos(p f32.Point) { n.pos = p }

// Size returns the node's size in its own space.
func (n *Node) Size() f32.Point { return n.size }

// SetSize sets the node's size in its own space. Negative extents are
// treated as zero.
func (n *Node) SetSize(sz f32.Point) {
	if sz.X < 0 {
		sz.X = 0
	}
	if sz.Y < 0 {
		sz.Y = 0
	}
	n.size = sz
}

// Bounds returns the node's bounds in its own space.
func (n *Node) Bounds() f32.Rectangle {
	return f32.Rectangle{Max: n.size}
}

// Visible reports whether the node itself is marked visible. Use Present to
// check the whole ancestor chain.
func (n *Node) Visible() bool { return !n.hidden }

// SetVisible marks the node visible or hidden. A hidden node and its subtree
// are excluded from hit testing.
func (n *Node) SetVisible(v bool) { n.hidden = !v }

// SetTransform sets an extra transform applied after the node's position
// offset when mapping local coordinates to the parent's space.
func (n *Node) SetTransform(t f32.Affine2D) { n.extra = t }

// Transform returns the node's complete local-to-parent transform.
func (n *Node) Transform() f32.Affine2D {
	return f32.Affine2D{}.Offset(n.pos).Mul(n.extra)
}

// Parent returns the node's parent element, or nil for a detached node or
// tree root.
func (n *Node) Parent() Drawable { return n.parent }

// Children returns the node's children, ordered back to front.
func (n *Node) Children() []Drawable { return n.children }

// Attach appends child to the node's children, detaching it from any
// previous parent. The owner is the Drawable embedding n.
func (n *Node) Attach(owner, child Drawable) {
	cn := child.Node()
	if cn.parent != nil {
		cn.parent.Node().Detach(child)
	}
	cn.parent = owner
	n.children = append(n.children, child)
}

// Detach removes child from the node's children. It is a no-op if child is
// not attached to the node.
func (n *Node) Detach(child Drawable) {
	idx := slices.Index(n.children, child)
	if idx == -1 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.Node().parent = nil
}

// RootOf returns the root of the tree containing d.
func RootOf(d Drawable) Drawable {
	for p := d.Node().Parent(); p != nil; p = p.Node().Parent() {
		d = p
	}
	return d
}

// IsAncestor reports whether anc appears in d's parent chain. A drawable is
// not its own ancestor.
func IsAncestor(anc, d Drawable) bool {
	for p := d.Node().Parent(); p != nil; p = p.Node().Parent() {
		if p == anc {
			return true
		}
	}
	return false
}

// Ancestor returns the nearest element in d's parent chain, d included,
// implementing T.
func Ancestor[T any](d Drawable) (T, bool) {
	for ; d != nil; d = d.Node().Parent() {
		if t, ok := d.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Present reports whether d and all its ancestors are visible.
func Present(d Drawable) bool {
	for ; d != nil; d = d.Node().Parent() {
		if !d.Node().Visible() {
			return false
		}
	}
	return true
}

// TransformToGlobal returns the transform mapping d's local space to the
// global space of its tree root.
func TransformToGlobal(d Drawable) f32.Affine2D {
	tr := d.Node().Transform()
	for p := d.Node().Parent(); p != nil; p = p.Node().Parent() {
		tr = p.Node().Transform().Mul(tr)
	}
	return tr
}

// LocalToGlobal maps p from d's local space to global space.
func LocalToGlobal(d Drawable, p f32.Point) f32.Point {
	return TransformToGlobal(d).Transform(p)
}

// GlobalToLocal maps p from global space to d's local space.
func GlobalToLocal(d Drawable, p f32.Point) f32.Point {
	return TransformToGlobal(d).Invert().Transform(p)
}

// ToSpaceOf maps p from d's local space to other's local space. The two
// elements must share a tree root for the result to be meaningful.
func ToSpaceOf(d, other Drawable, p f32.Point) f32.Point {
	return GlobalToLocal(other, LocalToGlobal(d, p))
}
