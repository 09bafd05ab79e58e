/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

For SVG text we need far less than a typesetter: a character-to-glyph
mapping, advances (horizontal and vertical), pair kerning, a few line metrics
for text decorations, and glyph outlines for stroked text. All of these are
covered by interface Typeface, with metrics measured in hundredths of an em.

OpenType fonts are parsed twice: go-text/typesetting is used for
cmap lookups, metrics and the font description, x/image/font/sfnt for outlines
and kerning.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'svgtext.fonts'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.fonts")
}
