package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
	"github.com/npillmayer/svgtext/engine/textrender"
	"github.com/npillmayer/svgtext/input/svgdoc"
	"github.com/pterm/pterm"
	"golang.org/x/net/html"
)

// Intp is our interpreter object
type Intp struct {
	conf     schuko.Configuration
	repl     *readline.Instance
	registry *fontregistry.Registry
	doc      *svgdoc.Document
	family   string  // font-family chain for glyphs and layout
	size     float64 // font size for glyphs and layout
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands.
const (
	QUIT int = iota
	HELP
	RESOLVE
	GLYPHS
	LAYOUT
	LOAD
	RENDER
	FONTS
	FAMILY
)

// Command is a parsed input line.
type Command struct {
	code int
	arg  string
}

func parseCommand(line string) Command {
	verb, arg, _ := strings.Cut(line, " ")
	cmd := Command{arg: strings.TrimSpace(arg)}
	switch strings.ToLower(verb) {
	case "quit", "exit":
		cmd.code = QUIT
	case "resolve":
		cmd.code = RESOLVE
	case "glyphs":
		cmd.code = GLYPHS
	case "layout":
		cmd.code = LAYOUT
	case "load":
		cmd.code = LOAD
	case "render":
		cmd.code = RENDER
	case "fonts":
		cmd.code = FONTS
	case "family", "font":
		cmd.code = FAMILY
	default:
		cmd.code = HELP
	}
	tracer().Debugf("command %d %q", cmd.code, cmd.arg)
	return cmd
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case RESOLVE:
		return false, intp.resolve(cmd.arg)
	case GLYPHS:
		return false, intp.glyphs(cmd.arg)
	case LAYOUT:
		return false, intp.layout(cmd.arg)
	case LOAD:
		return false, intp.loadSVG(cmd.arg)
	case RENDER:
		return false, intp.renderSVG()
	case FONTS:
		intp.fonts()
	case FAMILY:
		return false, intp.setFamily(cmd.arg)
	default:
		help(cmd.arg)
	}
	return false, nil
}

// --- Commands --------------------------------------------------------------

// resolve takes a family chain, optionally followed by 'bold' and/or
// 'italic'.
func (intp *Intp) resolve(arg string) error {
	if arg == "" {
		return errors.New("usage: resolve <family-chain> [bold] [italic]")
	}
	weight, fstyle := font.WeightNormal, font.StyleNormal
	fields := strings.Fields(arg)
	for n := len(fields); n > 1; n = len(fields) {
		if last := strings.ToLower(fields[n-1]); last == "bold" {
			weight = font.WeightBold
		} else if last == "italic" {
			fstyle = font.StyleItalic
		} else {
			break
		}
		fields = fields[:n-1]
	}
	chain := fontregistry.ParseFamilyList(strings.Join(fields, " "))
	info := intp.resolver().Resolve(chain, weight, fstyle, font.StretchNormal, font.VariantNormal)
	data := pterm.TableData{
		{"Family", "Source", "Aspect", "Typeface"},
		{info.Family, info.Source.String(), info.Aspect().String(), info.Typeface.Family()},
	}
	if info.Alternate != nil {
		data = append(data, []string{info.Alternate.Family, "alternate", info.Alternate.Aspect().String(),
			info.Alternate.Typeface.Family()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) setFamily(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		pterm.Printfln("font: %s %gpx", intp.family, intp.size)
		return nil
	}
	if size, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
		if size <= 0 {
			return fmt.Errorf("invalid font size %g", size)
		}
		intp.size = size
		fields = fields[:len(fields)-1]
	}
	if len(fields) > 0 {
		intp.family = strings.Join(fields, " ")
	}
	pterm.Printfln("font: %s %gpx", intp.family, intp.size)
	return nil
}

func (intp *Intp) textRun(text string) *style.TextRun {
	props := style.Properties{}
	props.Set("font-family", intp.family)
	props.Set("font-size", strconv.FormatFloat(intp.size, 'g', -1, 64))
	return style.NewTextRun(text, props, intp.resolver(), 0)
}

// glyphs takes a text, optionally followed by '|' and explicit glyph
// indices.
func (intp *Intp) glyphs(arg string) error {
	text, indices, _ := strings.Cut(arg, "|")
	text, indices = strings.TrimSpace(text), strings.TrimSpace(indices)
	if text == "" {
		return errors.New("usage: glyphs <text> [| <indices>]")
	}
	run := intp.textRun(text)
	var gr *glyphing.GlyphRunSpec
	var err error
	if indices != "" {
		gr, err = glyphing.BuildIndices(run.Typeface(), text, indices, run.EmSize, false,
			glyphing.WithKerning(run.Kerning))
	} else {
		gr, err = glyphing.Build(run.Typeface(), text, run.EmSize, false, glyphing.WithKerning(run.Kerning))
	}
	if err != nil {
		return err
	}
	pterm.Printfln("%s: %d glyphs, width %.2f", run.Font, gr.Len(), gr.Width())
	data := pterm.TableData{{"Cluster", "Glyphs", "Advances"}}
	for _, c := range gr.Clusters() {
		var gids, advs []string
		for g := c.GlyphStart; g < c.GlyphEnd; g++ {
			gids = append(gids, strconv.Itoa(int(gr.Glyphs[g])))
			advs = append(advs, strconv.FormatFloat(gr.Advances[g], 'f', 2, 64))
		}
		data = append(data, []string{
			string(gr.Chars[c.CharStart:c.CharEnd]),
			strings.Join(gids, " "),
			strings.Join(advs, " "),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// layout lays out a line of text horizontally at the origin.
func (intp *Intp) layout(text string) error {
	if text == "" {
		return errors.New("usage: layout <text>")
	}
	rec := &textrender.Recording{Embedded: true}
	r := textrender.NewRenderer(textrender.Horizontal, rec, intp.conf)
	cursor := gg.Point{}
	run := intp.textRun(text)
	if err := r.RenderRun(run, &cursor, 0, placement.TextPlacement{}); err != nil {
		return err
	}
	printRecording(rec)
	pterm.Printfln("cursor at (%.2f,%.2f)", cursor.X, cursor.Y)
	return nil
}

func (intp *Intp) loadSVG(path string) error {
	if path == "" {
		return errors.New("usage: load <file.svg>")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := svgdoc.Parse(f)
	if err != nil {
		return err
	}
	intp.doc = doc
	pterm.Info.Printfln("loaded %s: %d text elements, %d paths, %d fonts", path,
		len(doc.Texts), len(doc.Paths), doc.Fonts.Len())
	return nil
}

func (intp *Intp) renderSVG() error {
	if intp.doc == nil {
		return errors.New("no document loaded")
	}
	rec := &textrender.Recording{Embedded: true}
	err := intp.doc.Render(rec, svgdoc.Options{
		Resolver: intp.resolver(),
		Conf:     intp.conf,
		Images: func(n *html.Node, at gg.Point) {
			pterm.Printfln("<%s> at (%.2f,%.2f)", n.Data, at.X, at.Y)
		},
	})
	printRecording(rec)
	return err
}

func (intp *Intp) fonts() {
	families := intp.registry.Families()
	pterm.Printfln("%d installed font families", len(families))
	for _, name := range families {
		desc, _ := intp.registry.Lookup(name)
		pterm.Printfln("  %-30s %s", name, strings.Join(desc.Variants, ", "))
	}
	intp.registry.LogFontList()
}

func (intp *Intp) resolver() *fontregistry.Resolver {
	if intp.doc != nil {
		return intp.doc.Resolver(intp.registry, nil, nil)
	}
	return fontregistry.NewResolver(intp.registry, nil, nil, nil)
}

// --- Output ----------------------------------------------------------------

func printRecording(rec *textrender.Recording) {
	data := pterm.TableData{{"#", "Primitive", "Typeface", "Fill"}}
	for i, item := range rec.Items {
		row := []string{strconv.Itoa(i)}
		switch p := item.(type) {
		case textrender.GlyphRunPrimitive:
			row = append(row, p.String(), p.Typeface.Family(), paint(p.Fill))
		case textrender.GeometryPrimitive:
			row = append(row, p.String(), "", paint(p.Fill))
		}
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func paint(p style.Paint) string {
	if !p.Set {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B)
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	pterm.Info.Println("Commands")
	pterm.Println(`
	resolve <family-chain> [bold] [italic]   resolve a font-family chain
	font [<family-chain>] [<size>]           set font for glyphs and layout
	glyphs <text> [| <indices>]              build a glyph run, optionally from glyph indices
	layout <text>                            lay out text horizontally
	load <file.svg>                          load an SVG document
	render                                   render the text of the document
	fonts                                    list installed font families
	help                                     this message
	quit                                     leave the CLI
	`)
}
