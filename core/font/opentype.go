package font

import (
	"bytes"
	"errors"
	"math"
	"os"

	gotext "github.com/go-text/typesetting/font"
	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ScalableFont is an OpenType font loaded from a file or from memory.
// It implements Typeface.
//
// A ScalableFont is read-only after loading and may be shared between
// renderers.
type ScalableFont struct {
	Fontname string     // full name of the font
	Filepath string     // file path, "internal" for packaged fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // used for outlines and kerning
	face     *gotext.Face
	family   string
	aspect   Aspect
	upem     float64
	metrics  Metrics
}

var _ Typeface = (*ScalableFont)(nil)

// LoadOpenTypeFont loads a TrueType or OpenType font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of a TrueType or OpenType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	if f.face, err = gotext.ParseTTF(bytes.NewReader(f.Binary)); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	desc := f.face.Describe()
	f.family = desc.Family
	if f.family == "" {
		f.family, _ = f.SFNT.Name(nil, sfnt.NameIDFamily)
	}
	f.aspect = AspectFromDescription(desc.Aspect)
	f.upem = float64(f.face.Upem())
	if f.upem <= 0 {
		f.upem = 1000
	}
	f.metrics = f.loadMetrics()
	tracer().Debugf("parsed font %q, family %q, aspect %s", f.Fontname, f.family, f.aspect)
	return f, nil
}

// Family is part of interface Typeface.
func (f *ScalableFont) Family() string {
	return f.family
}

// Aspect is part of interface Typeface.
func (f *ScalableFont) Aspect() Aspect {
	return f.aspect
}

// GlyphIndex is part of interface Typeface.
func (f *ScalableFont) GlyphIndex(r rune) (GlyphIndex, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid > math.MaxUint16 {
		return NotDef, false
	}
	return GlyphIndex(gid), true
}

// Advance is part of interface Typeface.
func (f *ScalableFont) Advance(gid GlyphIndex, sideways bool) float64 {
	if !sideways {
		return f.toHundredths(float64(f.face.HorizontalAdvance(gotext.GID(gid))))
	}
	if f.face.HasVerticalMetrics() {
		// go-text reports vertical advances as negative values (y going up)
		return f.toHundredths(math.Abs(float64(f.face.VerticalAdvance(gotext.GID(gid)))))
	}
	return f.metrics.Ascent + f.metrics.Descent
}

// Kerning is part of interface Typeface. Only the legacy 'kern' table is
// consulted.
func (f *ScalableFont) Kerning(left, right GlyphIndex) float64 {
	var buf sfnt.Buffer
	ppem := fixed.I(int(f.upem))
	k, err := f.SFNT.Kern(&buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), ppem, xfont.HintingNone)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			tracer().Debugf("kerning %d/%d: %v", left, right, err)
		}
		return 0
	}
	return f.toHundredths(float64(k) / 64)
}

// Outline is part of interface Typeface.
func (f *ScalableFont) Outline(gid GlyphIndex, emSize float64) *gg.Path {
	if emSize <= 0 {
		return nil
	}
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(math.Round(emSize * 64))
	segs, err := f.SFNT.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		tracer().Debugf("cannot load outline of glyph %d: %v", gid, err)
		return nil
	}
	return segmentsToPath(segs)
}

// Metrics is part of interface Typeface.
func (f *ScalableFont) Metrics() Metrics {
	return f.metrics
}

func (f *ScalableFont) toHundredths(v float64) float64 {
	return v * 100 / f.upem
}

func (f *ScalableFont) loadMetrics() Metrics {
	m := defaultMetrics
	if ext, ok := f.face.FontHExtents(); ok {
		m.Ascent = f.toHundredths(float64(ext.Ascender))
		m.Descent = f.toHundredths(-float64(ext.Descender))
	}
	if xh := f.face.LineMetric(gotext.XHeight); xh > 0 {
		m.XHeight = f.toHundredths(float64(xh))
	}
	// line metrics of go-text measure the top of the line, upwards
	if th := f.face.LineMetric(gotext.UnderlineThickness); th > 0 {
		m.UnderlineThickness = f.toHundredths(float64(th))
		pos := f.toHundredths(float64(f.face.LineMetric(gotext.UnderlinePosition)))
		m.UnderlineOffset = -pos + m.UnderlineThickness/2
	}
	if th := f.face.LineMetric(gotext.StrikethroughThickness); th > 0 {
		m.StrikeoutThickness = f.toHundredths(float64(th))
		pos := f.toHundredths(float64(f.face.LineMetric(gotext.StrikethroughPosition)))
		m.StrikeoutOffset = -pos + m.StrikeoutThickness/2
	}
	return m
}

// segmentsToPath converts sfnt glyph segments (y pointing down) to a path.
func segmentsToPath(segs sfnt.Segments) *gg.Path {
	p := gg.NewPath()
	open := false
	pt := func(v fixed.Point26_6) (float64, float64) {
		return float64(v.X) / 64, float64(v.Y) / 64
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadraticTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
	return p
}
