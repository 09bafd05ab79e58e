/*
Package style holds the styled text runs the layout engine consumes.

Properties arrive as cascade-resolved CSS strings, either one by one or as
a declaration block, as found in SVG style attributes. A TextRun is the
interpreted form: resolved font, em size, spacing, decorations, anchoring,
writing mode and paints.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgtext.layout'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.layout")
}
