/*
Package textrender lays out styled text runs and draws them as glyph runs
and geometry onto a surface.

Three layouts are supported: horizontal text, vertical text and text
following a path. Horizontal and vertical runs are rendered in one call to
RenderRun. Text on a path is rendered in two phases: characters of all runs
are measured first, then they are distributed along the path.

A glyph run primitive has a single origin, a single list of advances and a
single transformation. Runs with per-character positions or rotations are
therefore split into runs of single characters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textrender

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgtext.layout'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.layout")
}
