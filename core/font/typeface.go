package font

import (
	"github.com/gogpu/gg"
)

// GlyphIndex is the index of a glyph within a font. Index 0 is the
// "notdef" glyph of every font.
type GlyphIndex uint16

// NotDef is the glyph every font uses for characters it cannot display.
const NotDef GlyphIndex = 0

// Typeface is a concrete font, ready to be used for laying out text.
//
// All metric values are measured in hundredths of an em. Clients scale them
// by emSize/100 to get user units. Vertical values use the SVG coordinate
// system, i.e. y increases downwards.
type Typeface interface {
	Family() string
	Aspect() Aspect
	// GlyphIndex maps a character to a glyph. ok is false for missing glyphs,
	// in which case NotDef is returned.
	GlyphIndex(r rune) (gid GlyphIndex, ok bool)
	// Advance returns the advance of a glyph along the width axis, or along
	// the height axis if sideways is set.
	Advance(gid GlyphIndex, sideways bool) float64
	// Kerning returns the adjustment of the advance of left if followed by right.
	Kerning(left, right GlyphIndex) float64
	// Outline returns the outline of a glyph for a given em size, positioned
	// with its origin at (0,0). It returns nil for glyphs without outline.
	Outline(gid GlyphIndex, emSize float64) *gg.Path
	Metrics() Metrics
}

// ClusterMapper is implemented by typefaces which map a sequence of characters
// to a single glyph (ligatures of SVG fonts). MapCluster returns the glyph
// for the longest matching prefix of text and the number of characters consumed.
type ClusterMapper interface {
	MapCluster(text []rune) (gid GlyphIndex, n int, ok bool)
}

// Metrics holds the line metrics of a typeface, in hundredths of an em.
// Offsets are measured from the baseline, positive downwards.
type Metrics struct {
	Ascent             float64 // distance from baseline to top, positive
	Descent            float64 // distance from baseline to bottom, positive
	XHeight            float64
	UnderlineOffset    float64 // center of underline, usually positive
	UnderlineThickness float64
	StrikeoutOffset    float64 // center of line-through, usually negative
	StrikeoutThickness float64
}

// OverlineOffset is the center of an overline: at the ascent.
func (m Metrics) OverlineOffset() float64 {
	return -m.Ascent + m.UnderlineThickness/2
}

// defaultMetrics are used for fonts which do not provide line metrics.
var defaultMetrics = Metrics{
	Ascent:             80,
	Descent:            20,
	XHeight:            50,
	UnderlineOffset:    10,
	UnderlineThickness: 5,
	StrikeoutOffset:    -30,
	StrikeoutThickness: 5,
}

// DefaultMetrics returns line metrics which fit most Latin fonts.
func DefaultMetrics() Metrics {
	return defaultMetrics
}

// Descriptor describes an installed font family with the font files of its
// variants.
type Descriptor struct {
	Family   string
	Path     string   // file path of the regular variant, if known
	Variants []string // variant names, e.g. "regular", "bold", "700italic"
	Files    []string // file paths per variant, parallel to Variants
}

// FileFor returns the file path of a variant, or the descriptor's path.
func (d Descriptor) FileFor(variant string) string {
	for i, v := range d.Variants {
		if v == variant && i < len(d.Files) {
			return d.Files[i]
		}
	}
	return d.Path
}
