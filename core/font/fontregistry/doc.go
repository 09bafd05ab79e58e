/*
Package fontregistry manages a registry for installed fonts and resolves
font-family chains to concrete typefaces.

A Registry is populated once, on first use, from a FontSource (usually the
fonts installed on the host, see package resources). It is read-only after
population; loaded font files are cached.

A Resolver maps a CSS font-family chain plus weight, style, stretch and
variant to a FontFamilyInfo. It consults, in order, fonts embedded in the
document, a private font collection, a table of aliases for PostScript-style
names, and the registry. Generic families (serif, sans-serif, monospace) are
remembered as a fallback. Resolution never fails: if nothing matches, the
default family is used.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'svgtext.fonts'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.fonts")
}
