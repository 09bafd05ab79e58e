/*
Package resources locates fonts installed on the host.

Installed fonts are found in three ways: by scanning the platform's font
directories (using go-findfont), by scanning directories given by the
configuration key 'fonts.dirs', and by reading the output of fontconfig's
'fc-list', if configuration key 'fontconfig' points to this binary. The
result of calling 'fc-list' is cached in the user's configuration folder.

As font scanning may be a time-consuming task, clients should scan once and
keep the result. Package fontregistry does this for them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'svgtext.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("svgtext.fonts")
}
