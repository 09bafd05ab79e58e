/*
Package svgdoc reads the parts of an SVG document which are needed to lay
out its text: text content elements, paths referenced by textPath
elements and SVG fonts.

Documents are parsed as HTML with inline SVG, which is lenient towards
incomplete input. There is no DOM and no style sheet cascade: properties are
taken from presentation attributes and style attributes and are inherited
down the element chain.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package svgdoc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'svgtext.input'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.input")
}
