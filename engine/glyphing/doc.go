/*
Package glyphing creates runs of glyphs from text.

A glyph run is the atomic drawable unit of text: a sequence of glyph indices
with advances and optional offsets, positioned at a single origin. Package
glyphing maps characters to glyphs 1:1 (except for ligatures of SVG fonts)
and does no further shaping. Clients needing control over glyphs may
specify them explicitly, see BuildIndices.

The cluster map of a run maps each character to the first glyph of its
cluster.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'svgtext.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("svgtext.glyphs")
}
