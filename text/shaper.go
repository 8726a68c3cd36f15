// SPDX-License-Identifier: Unlicense OR MIT

// Package text implements text shaping and measurement of single-line
// strings such as labels and menu items.
package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"veilui.org/f32"
	vfont "veilui.org/font"
)

// Extents are the measured extents of a shaped string on a single line.
type Extents struct {
	// Advance is the width of the shaped string.
	Advance fixed.Int26_6
	// Ascent is the distance from the baseline to the top of the line.
	Ascent fixed.Int26_6
	// Descent is the distance from the baseline to the bottom of the
	// line, expressed as a positive quantity.
	Descent fixed.Int26_6
}

// Height returns the line height of the extents.
func (e Extents) Height() fixed.Int26_6 {
	return e.Ascent + e.Descent
}

// Size returns the extents as a float32 size.
func (e Extents) Size() f32.Point {
	return f32.Point{X: ToPx(e.Advance), Y: ToPx(e.Height())}
}

// ToPx converts a fixed-point value to float32 pixels.
func ToPx(i fixed.Int26_6) float32 {
	return float32(i) / 64.0
}

// Shaper shapes strings of text with a collection of font faces. Faces are
// prioritized in the order in which they are loaded, with the first face
// being the default; later faces supply glyphs the earlier ones lack.
//
// A Shaper is not safe for concurrent use.
type Shaper struct {
	faces []font.Face

	shaper        shaping.HarfbuzzShaper
	bidiParagraph bidi.Paragraph

	// Scratch buffers reused across Measure calls.
	splitScratch []shaping.Input
	runesScratch []rune
}

// NewShaper constructs a shaper with the provided font collection.
func NewShaper(collection ...vfont.FontFace) *Shaper {
	s := new(Shaper)
	for _, f := range collection {
		s.faces = append(s.faces, f.Face.Face())
	}
	return s
}

// Measure shapes str at the given pixels-per-em and returns its extents.
// The string is treated as a single line; line-breaking control characters
// are replaced with spaces.
func (s *Shaper) Measure(ppem fixed.Int26_6, str string) Extents {
	if len(s.faces) == 0 {
		return Extents{}
	}
	s.runesScratch = replaceControlCharacters(append(s.runesScratch[:0], []rune(str)...))
	var e Extents
	for _, input := range s.split(toInput(s.faces[0], ppem, s.runesScratch)) {
		out := s.shaper.Shape(input)
		e.Advance += out.Advance
		if a := out.LineBounds.Ascent; a > e.Ascent {
			e.Ascent = a
		}
		if d := -out.LineBounds.Descent; d > e.Descent {
			e.Descent = d
		}
	}
	return e
}

// split divides the input on bidirectional boundaries and on font glyph
// coverage, so every returned run is shapeable by a single face in a single
// direction.
func (s *Shaper) split(input shaping.Input) []shaping.Input {
	s.splitScratch = s.splitScratch[:0]
	for _, run := range s.splitBidi(input) {
		s.splitScratch = append(s.splitScratch, shaping.SplitByFontGlyphs(run, s.faces)...)
	}
	return s.splitScratch
}

// splitBidi divides the input on boundaries of bidirectional text and sets
// the direction of each run.
func (s *Shaper) splitBidi(input shaping.Input) []shaping.Input {
	var splitInputs []shaping.Input
	if input.Direction.Axis() != di.Horizontal || input.RunStart == input.RunEnd {
		return []shaping.Input{input}
	}
	def := bidi.LeftToRight
	if input.Direction.Progression() == di.TowardTopLeft {
		def = bidi.RightToLeft
	}
	s.bidiParagraph.SetString(string(input.Text), bidi.DefaultDirection(def))
	out, err := s.bidiParagraph.Order()
	if err != nil {
		return []shaping.Input{input}
	}
	for i := 0; i < out.NumRuns(); i++ {
		currentInput := input
		run := out.Run(i)
		_, endRune := run.Pos()
		currentInput.RunEnd = endRune + 1
		if run.Direction() == bidi.RightToLeft {
			currentInput.Direction = di.DirectionRTL
		} else {
			currentInput.Direction = di.DirectionLTR
		}
		splitInputs = append(splitInputs, currentInput)
		input.RunStart = currentInput.RunEnd
	}
	return splitInputs
}

// toInput converts its parameters into a shaping.Input.
func toInput(face font.Face, ppem fixed.Int26_6, runes []rune) shaping.Input {
	var input shaping.Input
	input.Direction = di.DirectionLTR
	input.Text = runes
	input.Size = ppem
	input.Face = face
	input.RunStart = 0
	input.RunEnd = len(runes)
	return input
}

// replaceControlCharacters replaces problematic unicode
// code points with spaces to ensure proper rune accounting.
func replaceControlCharacters(in []rune) []rune {
	for i, r := range in {
		switch r {
		// ASCII File separator.
		case '':
		// ASCII Group separator.
		case '':
		// ASCII Record separator.
		case '':
		case '\r':
		case '\n':
		// Unicode "next line" character.
		case '':
		// Unicode "paragraph separator".
		case ' ':
		default:
			continue
		}
		in[i] = ' '
	}
	return in
}
