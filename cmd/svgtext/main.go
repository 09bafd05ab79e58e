/*
Command svgtext is an interactive tool for exploring text layout. It
resolves font families, builds glyph runs, lays out text and renders the
text of SVG documents, printing the resulting drawing primitives.

With flag -svg, a document is rendered in batch mode.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/pterm/pterm"
)

// tracer traces with key 'svgtext.cli'
func tracer() tracing.Trace {
	return tracing.Select("svgtext.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	svgfile := flag.String("svg", "", "SVG file to render in batch mode")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.svgtext.cli":    *tlevel,
		"trace.svgtext.fonts":  *tlevel,
		"trace.svgtext.glyphs": *tlevel,
		"trace.svgtext.layout": *tlevel,
		"trace.svgtext.input":  *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	intp := &Intp{
		conf:     conf,
		registry: fontregistry.GlobalRegistry(conf),
		family:   "serif",
		size:     16,
	}
	if *svgfile != "" { // batch mode
		if err := intp.loadSVG(*svgfile); err != nil {
			core.UserError(err)
			os.Exit(2)
		}
		if err := intp.renderSVG(); err != nil {
			core.UserError(err)
			os.Exit(2)
		}
		return
	}

	pterm.Info.Println("Welcome to the SVG text CLI") // colored welcome message
	repl, err := readline.New("svgtext > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                              // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
