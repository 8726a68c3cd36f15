// SPDX-License-Identifier: Unlicense OR MIT

// Package opentype parses OpenType font files into faces usable by a text
// shaper.
package opentype

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	fontapi "github.com/go-text/typesetting/opentype/api/font"
	"github.com/go-text/typesetting/opentype/api/metadata"
	"github.com/go-text/typesetting/opentype/loader"

	vfont "veilui.org/font"
)

// Face is a thread-safe representation of a loaded font. For efficiency,
// applications should construct a face for any given font file once,
// reusing it across different shapers.
type Face struct {
	face    font.Font
	aspect  metadata.Aspect
	family  string
	variant string
}

// Parse constructs a Face from source bytes.
func Parse(src []byte) (Face, error) {
	ld, err := loader.NewLoader(bytes.NewReader(src))
	if err != nil {
		return Face{}, err
	}
	ft, err := fontapi.NewFont(ld)
	if err != nil {
		return Face{}, fmt.Errorf("failed parsing truetype font: %w", err)
	}
	data := metadata.Metadata(ld)
	var variant string
	if data.IsMonospace {
		variant = "Mono"
	}
	return Face{
		face:    ft,
		aspect:  data.Aspect,
		family:  data.Family,
		variant: variant,
	}, nil
}

// Face returns a thread-unsafe wrapper for this Face suitable for use by a
// single shaper. Face may be invoked any number of times and is safe so
// long as each return value is only used by one goroutine.
func (f Face) Face() font.Face {
	return &fontapi.Face{Font: f.face}
}

// Font returns a font descriptor with metadata populated from the parsed
// file. The only Variant that can be detected automatically is "Mono".
func (f Face) Font() vfont.Font {
	return vfont.Font{
		Typeface: vfont.Typeface(f.family),
		Variant:  vfont.Variant(f.variant),
		Style:    f.style(),
		Weight:   f.weight(),
	}
}

func (f Face) style() vfont.Style {
	if f.aspect.Style == metadata.StyleItalic {
		return vfont.Italic
	}
	return vfont.Regular
}

func (f Face) weight() vfont.Weight {
	switch f.aspect.Weight {
	case metadata.WeightThin:
		return vfont.Thin
	case metadata.WeightExtraLight:
		return vfont.ExtraLight
	case metadata.WeightLight:
		return vfont.Light
	case metadata.WeightNormal:
		return vfont.Normal
	case metadata.WeightMedium:
		return vfont.Medium
	case metadata.WeightSemibold:
		return vfont.SemiBold
	case metadata.WeightBold:
		return vfont.Bold
	case metadata.WeightExtraBold:
		return vfont.ExtraBold
	case metadata.WeightBlack:
		return vfont.Black
	default:
		return vfont.Normal
	}
}
