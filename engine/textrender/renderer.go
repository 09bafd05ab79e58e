package textrender

import (
	"math"
	"strconv"
	"unicode"

	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
	"golang.org/x/text/unicode/bidi"
)

// Kind is the layout a renderer performs.
type Kind uint8

// Kinds of renderers.
const (
	Horizontal Kind = iota
	Vertical
	OnPath
)

func (k Kind) String() string {
	switch k {
	case Vertical:
		return "vertical"
	case OnPath:
		return "on-path"
	}
	return "horizontal"
}

// SelectKind selects the renderer kind for a writing mode.
func SelectKind(wm style.WritingMode, onPath bool) Kind {
	switch {
	case onPath:
		return OnPath
	case wm.IsVertical():
		return Vertical
	}
	return Horizontal
}

// DefaultFlatness is the default tolerance for flattening curves, in user units.
const DefaultFlatness = 0.1

// Renderer lays out text runs and draws them onto a surface.
type Renderer struct {
	Kind    Kind
	Surface Surface
	// Flatness is the tolerance for flattening glyph outlines and paths.
	Flatness float64
	// EmbeddedAsOutlines selects how fonts embedded in a document are drawn
	// onto surfaces not supporting them: as outline geometry if set, else as
	// glyph runs of the font's alternate family.
	EmbeddedAsOutlines bool
}

// NewRenderer creates a renderer of a given kind. conf may be nil; it is
// consulted for keys 'pathtext.flatness' and 'embedded-outlines'.
func NewRenderer(kind Kind, surface Surface, conf schuko.Configuration) *Renderer {
	r := &Renderer{
		Kind:               kind,
		Surface:            surface,
		Flatness:           DefaultFlatness,
		EmbeddedAsOutlines: true,
	}
	if conf != nil {
		if s := conf.GetString("pathtext.flatness"); s != "" {
			if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
				r.Flatness = f
			}
		}
		if conf.IsSet("embedded-outlines") {
			r.EmbeddedAsOutlines = conf.GetBool("embedded-outlines")
		}
	}
	return r
}

// RenderRun lays out a run of text at cursor and draws it. cursor is
// advanced past the text. baseRotation (degrees) rotates the run as a whole
// around its origin, unless characters carry their own rotation.
//
// Text on a path cannot be rendered run by run; use BeginPath instead.
func (r *Renderer) RenderRun(run *style.TextRun, cursor *gg.Point, baseRotation float64,
	pl placement.TextPlacement) error {
	//
	if run == nil || cursor == nil {
		return core.Error(core.EINVALID, "render run needs a run and a cursor")
	}
	if r.Surface == nil {
		return core.Error(core.EINVALID, "renderer has no surface")
	}
	baseRotation = placement.NormalizeRotation(baseRotation)
	switch r.Kind {
	case Horizontal:
		return r.renderHorizontal(run, cursor, baseRotation, pl)
	case Vertical:
		return r.renderVertical(run, cursor, baseRotation, pl)
	}
	return core.Error(core.EINVALID, "text on a path must be rendered with a path text builder")
}

// --- Faces -----------------------------------------------------------------

// face is the typeface a run is drawn with and the way it is drawn.
type face struct {
	tf       font.Typeface
	outlines bool
}

func (r *Renderer) face(run *style.TextRun) face {
	f := face{tf: run.Typeface(), outlines: run.IsStrokeOnly()}
	info := run.Font
	if info != nil && info.Embedded != nil && !r.Surface.SupportsEmbeddedFonts() {
		if r.EmbeddedAsOutlines {
			f.outlines = true
		} else if info.Alternate != nil && info.Alternate.Typeface != nil {
			f.tf = info.Alternate.Typeface
			tracer().Debugf("drawing embedded font %s as %s", info.Family, info.Alternate.Family)
		}
	}
	return f
}

// build creates the glyph run for text in visual order. Explicit glyph
// indices of a run apply to the run's complete text, in visual order.
func (r *Renderer) build(run *style.TextRun, f face, text string, sideways bool) (*glyphing.GlyphRunSpec, error) {
	explicit := run.GlyphIndices != "" && text == run.Text
	if run.Direction == glyphing.RightToLeft {
		text = bidi.ReverseString(text)
	}
	opts := []glyphing.BuildOption{
		glyphing.WithKerning(run.Kerning),
		glyphing.WithBidiLevel(run.Direction.BidiLevel()),
		glyphing.WithLanguage(run.Language),
	}
	if explicit {
		return glyphing.BuildIndices(f.tf, text, run.GlyphIndices, run.EmSize, sideways, opts...)
	}
	return glyphing.Build(f.tf, text, run.EmSize, sideways, opts...)
}

// logicalIndex maps the index of a character in visual order to its index
// in the text.
func logicalIndex(run *style.TextRun, gr *glyphing.GlyphRunSpec, c glyphing.Cluster) int {
	if run.Direction == glyphing.RightToLeft {
		return len(gr.Chars) - c.CharEnd
	}
	return c.CharStart
}

// --- Emitting primitives ---------------------------------------------------

// emit draws a glyph run at origin, transformed by m. width is the extent
// of text decorations.
func (r *Renderer) emit(run *style.TextRun, f face, gr *glyphing.GlyphRunSpec, origin gg.Point,
	m gg.Matrix, width float64) {
	//
	if gr.Len() > 0 {
		if f.outlines {
			r.emitOutlines(run, f, gr, origin, m)
		} else {
			r.Surface.DrawGlyphRun(GlyphRunPrimitive{
				Typeface:    f.tf,
				Run:         gr,
				Origin:      origin,
				Transform:   m,
				Fill:        run.Fill,
				Stroke:      run.Stroke,
				StrokeWidth: run.StrokeWidth,
			})
		}
	}
	if !gr.Sideways {
		r.emitDecorations(run, f.tf, origin, m, width)
	}
}

func (r *Renderer) emitOutlines(run *style.TextRun, f face, gr *glyphing.GlyphRunSpec, origin gg.Point,
	m gg.Matrix) {
	//
	out := gg.NewPath()
	pen := origin
	for i, gid := range gr.Glyphs {
		if outline := f.tf.Outline(gid, gr.EmSize); outline != nil {
			off := gr.Offset(i)
			at := m.Multiply(gg.Translate(pen.X+off.DX, pen.Y+off.DY))
			flattenInto(out, outline.Transform(at), r.flatness())
		}
		if gr.Sideways {
			pen.Y += gr.Advances[i]
		} else {
			pen.X += gr.Advances[i]
		}
	}
	if out.NumVerbs() == 0 {
		return
	}
	r.Surface.DrawGeometry(GeometryPrimitive{
		Kind:        GlyphOutline,
		Path:        out,
		Fill:        run.Fill,
		Stroke:      run.Stroke,
		StrokeWidth: run.StrokeWidth,
	})
}

func (r *Renderer) emitDecorations(run *style.TextRun, tf font.Typeface, origin gg.Point, m gg.Matrix,
	width float64) {
	//
	if run.Decoration == 0 || width == 0 {
		return
	}
	paint := run.Fill
	if !paint.Set {
		paint = run.Stroke
	}
	metrics := tf.Metrics()
	scale := run.EmSize / 100
	line := func(offset, thickness float64) {
		if thickness <= 0 {
			thickness = 5
		}
		h := thickness * scale
		rect := gg.NewPath()
		rect.Rectangle(origin.X, origin.Y+offset*scale-h/2, width, h)
		r.Surface.DrawGeometry(GeometryPrimitive{
			Kind:        DecorationLine,
			Path:        rect.Transform(m),
			Fill:        paint,
			StrokeWidth: run.StrokeWidth,
		})
	}
	if run.Decoration.Has(style.Underline) {
		line(metrics.UnderlineOffset, metrics.UnderlineThickness)
	}
	if run.Decoration.Has(style.Overline) {
		line(metrics.OverlineOffset(), metrics.UnderlineThickness)
	}
	if run.Decoration.Has(style.LineThrough) {
		line(metrics.StrikeoutOffset, metrics.StrikeoutThickness)
	}
}

func (r *Renderer) flatness() float64 {
	if r.Flatness <= 0 {
		return DefaultFlatness
	}
	return r.Flatness
}

// --- Geometry helpers ------------------------------------------------------

// rotationAround returns a rotation by deg degrees around p.
func rotationAround(p gg.Point, deg float64) gg.Matrix {
	if deg == 0 {
		return gg.Identity()
	}
	return gg.Translate(p.X, p.Y).Multiply(gg.Rotate(deg * math.Pi / 180)).Multiply(gg.Translate(-p.X, -p.Y))
}

// subpaths splits a path into its subpaths.
func subpaths(path *gg.Path) []*gg.Path {
	var subs []*gg.Path
	var cur *gg.Path
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		if verb == gg.MoveTo || cur == nil {
			cur = gg.NewPath()
			subs = append(subs, cur)
			if verb != gg.MoveTo {
				cur.MoveTo(0, 0)
			}
		}
		switch verb {
		case gg.MoveTo:
			cur.MoveTo(c[0], c[1])
		case gg.LineTo:
			cur.LineTo(c[0], c[1])
		case gg.QuadTo:
			cur.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			cur.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			cur.Close()
		}
	})
	return subs
}

// flattenInto appends the polylines of src to dst.
func flattenInto(dst *gg.Path, src *gg.Path, tolerance float64) {
	for _, sub := range subpaths(src) {
		first := true
		sub.FlattenCallback(tolerance, func(pt gg.Point) {
			if first {
				dst.MoveTo(pt.X, pt.Y)
				first = false
				return
			}
			dst.LineTo(pt.X, pt.Y)
		})
		if !first {
			dst.Close()
		}
	}
}

func isSpace(chars []rune) bool {
	for _, c := range chars {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return len(chars) > 0
}

// spacedAdvance applies letter- and word-spacing to the advance of a
// cluster.
//
// With both spacings set, white space advances by advance + word-spacing
// (plus letter-spacing). With only word-spacing set, white space advances by
// word-spacing alone, replacing the glyph's advance.
func spacedAdvance(run *style.TextRun, chars []rune, advance float64) float64 {
	if run.HasLetterSpacing {
		advance += run.LetterSpacing
	}
	if run.HasWordSpacing && isSpace(chars) {
		if run.HasLetterSpacing {
			advance += run.WordSpacing
		} else {
			advance = run.WordSpacing
		}
	}
	return advance
}
