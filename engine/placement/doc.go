/*
Package placement resolves the SVG positioning attributes of text (x, y, dx,
dy and rotate) to per-character placements.

A text placement is either scalar, with one location and one rotation for a
whole run, or a vector of character placements. Lists shorter than the
vector repeat their last entry. Axes without any values follow the running
text cursor.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package placement

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgtext.layout'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.layout")
}
