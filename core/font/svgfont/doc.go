/*
Package svgfont implements fonts defined inside SVG documents.

An SVG font is a <font> element with a <font-face> child, a list of <glyph>
elements carrying their outlines as path data, an optional <missing-glyph>
and kerning pairs (<hkern>, <vkern>). Package svgfont holds the glyph table
of such a font and makes it usable as a font.Typeface. Reading the elements
from a document is left to clients, see package input/svgdoc.

Glyphs may stand for more than one character (ligatures). Fonts therefore
implement font.ClusterMapper, which selects the longest matching glyph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package svgfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgtext.fonts'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.fonts")
}
