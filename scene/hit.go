// SPDX-License-Identifier: Unlicense OR MIT

package scene

import "veilui.org/f32"

// HitChain appends to chain the elements under root intersecting the global
// point p, innermost and topmost first, and returns the result. Later
// siblings are considered in front of earlier ones. Hidden subtrees are
// excluded.
func HitChain(root Drawable, p f32.Point, chain []Drawable) []Drawable {
	if root == nil {
		return chain
	}
	return appendHits(root, GlobalToLocal(root, p), chain)
}

// appendHits collects hits for d and its subtree. p is in d's local space.
func appendHits(d Drawable, p f32.Point, chain []Drawable) []Drawable {
	n := d.Node()
	if !n.Visible() {
		return chain
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		cp := c.Node().Transform().Invert().Transform(p)
		chain = appendHits(c, cp, chain)
	}
	if hitTest(d, p) {
		chain = append(chain, d)
	}
	return chain
}

func hitTest(d Drawable, p f32.Point) bool {
	if ht, ok := d.(HitTester); ok {
		return ht.Contains(p)
	}
	return p.In(d.Node().Bounds())
}
