package textrender

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/style"
)

// Primitive is a drawing primitive, either a GlyphRunPrimitive or a
// GeometryPrimitive.
type Primitive interface {
	isPrimitive()
}

// GlyphRunPrimitive draws a run of glyphs. Glyph i is placed at
//
//	Transform(Origin + (advance sum of glyphs 0…i-1, 0) + offset i)
//
// with advances running downwards for sideways runs.
type GlyphRunPrimitive struct {
	Typeface    font.Typeface
	Run         *glyphing.GlyphRunSpec
	Origin      gg.Point
	Transform   gg.Matrix
	Fill        style.Paint
	Stroke      style.Paint
	StrokeWidth float64
}

func (GlyphRunPrimitive) isPrimitive() {}

// Positions returns the positions of the glyphs of a run in user space.
func (p GlyphRunPrimitive) Positions() []gg.Point {
	pos := make([]gg.Point, p.Run.Len())
	pen := p.Origin
	for i, a := range p.Run.Advances {
		off := p.Run.Offset(i)
		pos[i] = p.Transform.TransformPoint(gg.Point{X: pen.X + off.DX, Y: pen.Y + off.DY})
		if p.Run.Sideways {
			pen.Y += a
		} else {
			pen.X += a
		}
	}
	return pos
}

func (p GlyphRunPrimitive) String() string {
	o := p.Transform.TransformPoint(p.Origin)
	return fmt.Sprintf("glyphs %q @(%.2f,%.2f) %s", string(p.Run.Chars), o.X, o.Y, p.Run)
}

// GeometryKind tells what a geometry primitive has been created for.
type GeometryKind uint8

// Kinds of geometry.
const (
	GlyphOutline GeometryKind = iota
	DecorationLine
)

func (k GeometryKind) String() string {
	if k == DecorationLine {
		return "decoration"
	}
	return "outline"
}

// GeometryPrimitive draws a path in user space. Glyph outlines are flattened
// to polylines.
type GeometryPrimitive struct {
	Kind        GeometryKind
	Path        *gg.Path
	Fill        style.Paint
	Stroke      style.Paint
	StrokeWidth float64
}

func (GeometryPrimitive) isPrimitive() {}

func (p GeometryPrimitive) String() string {
	bb := p.Path.BoundingBox()
	return fmt.Sprintf("%s [(%.2f,%.2f)-(%.2f,%.2f)]", p.Kind, bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// Surface receives drawing primitives in document order.
type Surface interface {
	DrawGlyphRun(GlyphRunPrimitive)
	DrawGeometry(GeometryPrimitive)
	// SupportsEmbeddedFonts is false for surfaces which can draw glyph runs
	// of installed fonts only.
	SupportsEmbeddedFonts() bool
}

// Recording is a surface which keeps all primitives in memory.
type Recording struct {
	Items    []Primitive
	Embedded bool // result of SupportsEmbeddedFonts
}

var _ Surface = (*Recording)(nil)

// DrawGlyphRun is part of interface Surface.
func (rec *Recording) DrawGlyphRun(p GlyphRunPrimitive) {
	rec.Items = append(rec.Items, p)
}

// DrawGeometry is part of interface Surface.
func (rec *Recording) DrawGeometry(p GeometryPrimitive) {
	rec.Items = append(rec.Items, p)
}

// SupportsEmbeddedFonts is part of interface Surface.
func (rec *Recording) SupportsEmbeddedFonts() bool {
	return rec.Embedded
}

// GlyphRuns returns the glyph run primitives of a recording.
func (rec *Recording) GlyphRuns() []GlyphRunPrimitive {
	var runs []GlyphRunPrimitive
	for _, item := range rec.Items {
		if p, ok := item.(GlyphRunPrimitive); ok {
			runs = append(runs, p)
		}
	}
	return runs
}

// Geometries returns the geometry primitives of a recording.
func (rec *Recording) Geometries() []GeometryPrimitive {
	var geoms []GeometryPrimitive
	for _, item := range rec.Items {
		if p, ok := item.(GeometryPrimitive); ok {
			geoms = append(geoms, p)
		}
	}
	return geoms
}

// Reset clears a recording.
func (rec *Recording) Reset() {
	rec.Items = rec.Items[:0]
}
