package svgdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/npillmayer/svgtext/core/font/svgfont"
	"github.com/npillmayer/svgtext/engine/textrender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	qconf "github.com/npillmayer/schuko/testconfig"
)

// noFonts is a font source without any installed fonts.
type noFonts struct{}

func (noFonts) Scan() []font.Descriptor { return nil }

func (noFonts) Load(path string) (font.Typeface, error) {
	return nil, errors.New("no fonts installed")
}

func parse(t *testing.T, svg string) *Document {
	doc, err := Parse(strings.NewReader(svg))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc *Document, rec *textrender.Recording, images ImageVisitor) {
	reg := fontregistry.NewRegistry(testconfig.Conf{}, noFonts{})
	err := doc.Render(rec, Options{Resolver: doc.Resolver(reg, nil, nil), Images: images})
	require.NoError(t, err)
}

func TestParseProperties(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg width="200" height="100" font-family="serif"><g fill="red">
		<text font-size="20" style="font-weight: bold">A<tspan font-size="50%">B</tspan></text>
		</g></svg>`)
	assert.Equal(t, 200.0, doc.Width)
	assert.Equal(t, 100.0, doc.Height)
	require.Len(t, doc.Texts, 1)
	spans := doc.Texts[0].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, "serif", spans[0].Props.Get("font-family").String())
	assert.Equal(t, "red", spans[0].Props.Get("fill").String())
	assert.Equal(t, "bold", spans[0].Props.Get("font-weight").String())
	assert.Equal(t, 20.0, spans[0].FontSize)
	assert.Equal(t, "bold", spans[1].Props.Get("font-weight").String())
	assert.Equal(t, 10.0, spans[1].FontSize)
	assert.Equal(t, "10", spans[1].Props.Get("font-size").String())
}

func TestWhiteSpace(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, "<svg><text>  a \n\t b  </text><text> a <tspan> b </tspan> c </text>"+
		`<text xml:space="preserve"> a  b</text></svg>`)
	require.Len(t, doc.Texts, 3)
	assert.Equal(t, "a b", doc.Texts[0].Text())
	assert.Equal(t, "a b c", doc.Texts[1].Text())
	assert.Equal(t, " a  b", doc.Texts[2].Text())
}

func TestPositionLists(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><text x="1 2 3 4" rotate="10 20">ab<tspan>cd</tspan></text>
		<text x="1 2" y="5">ab<tspan x="7">cd</tspan>e</text></svg>`)
	require.Len(t, doc.Texts, 2)
	spans := doc.Texts[0].Spans
	require.Len(t, spans, 2)
	assert.Len(t, spans[0].Position.X, 4)
	assert.Equal(t, []dimen.Length{dimen.U(3), dimen.U(4)}, spans[1].Position.X)
	assert.Equal(t, []float64{20}, spans[1].Position.Rotate, "last rotation carries forward")
	//
	spans = doc.Texts[1].Spans
	require.Len(t, spans, 3)
	assert.Equal(t, []dimen.Length{dimen.U(7)}, spans[1].Position.X)
	assert.Nil(t, spans[2].Position.X)
	assert.Nil(t, spans[1].Position.Y, "y list of text is exhausted")
}

func TestTextPathReference(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><defs><path id="p" d="M0 50 L200 50"/></defs>
		<text><textPath href="#p" startOffset="10%" textLength="40">AB</textPath></text>
		<text><textPath xlink:href="#nowhere">C</textPath></text></svg>`)
	require.Contains(t, doc.Paths, "p")
	require.Len(t, doc.Texts, 2)
	ref := doc.Texts[0].Spans[0].Path
	require.NotNil(t, ref)
	assert.Equal(t, "p", ref.ID)
	assert.NotNil(t, ref.Path)
	assert.True(t, ref.StartOffset.IsPercentage())
	assert.Equal(t, 40.0, ref.TextLength.Value)
	assert.Nil(t, doc.Texts[1].Spans[0].Path.Path)
}

func TestReadFonts(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><defs><font id="caps" horiz-adv-x="500">
		<font-face font-family="Caps" units-per-em="1000" ascent="800" descent="-200"/>
		<missing-glyph horiz-adv-x="300" d="M0 0 L300 0 L300 700 Z"/>
		<glyph unicode="A" glyph-name="A" d="M0 0 L250 700 L500 0 Z"/>
		<glyph unicode="V" glyph-name="V" horiz-adv-x="600"/>
		<hkern u1="A" u2="V" k="100"/>
		</font></defs></svg>`)
	fonts := doc.Fonts.Lookup("caps")
	require.Len(t, fonts, 1)
	f := fonts[0]
	assert.Equal(t, "caps", f.ID)
	a, ok := f.GlyphIndex('A')
	require.True(t, ok)
	v, ok := f.GlyphIndex('V')
	require.True(t, ok)
	assert.Equal(t, 50.0, f.Advance(a, false))
	assert.Equal(t, 60.0, f.Advance(v, false))
	assert.Equal(t, -10.0, f.Kerning(a, v))
	assert.NotNil(t, f.Outline(a, 10))
}

func TestRenderHorizontal(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><text x="10" y="20" font-size="20">AB<tspan dy="5">C</tspan></text></svg>`)
	rec := &textrender.Recording{}
	render(t, doc, rec, nil)
	runs := rec.GlyphRuns()
	require.Len(t, runs, 2)
	p := runs[0].Positions()
	assert.InDelta(t, 10, p[0].X, 1e-6)
	assert.InDelta(t, 20, p[0].Y, 1e-6)
	q := runs[1].Positions()
	assert.InDelta(t, 10+runs[0].Run.Width(), q[0].X, 1e-6)
	assert.InDelta(t, 25, q[0].Y, 1e-6)
}

func TestRenderEmbeddedFont(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><font horiz-adv-x="500"><font-face font-family="Caps"/>
		<glyph unicode="A" d="M0 0 L250 700 L500 0 Z"/></font>
		<text font-family="Caps, serif" font-size="20">AA</text></svg>`)
	rec := &textrender.Recording{Embedded: true}
	render(t, doc, rec, nil)
	runs := rec.GlyphRuns()
	require.Len(t, runs, 1)
	_, isSVG := runs[0].Typeface.(*svgfont.Font)
	assert.True(t, isSVG)
	assert.Equal(t, []float64{10, 10}, runs[0].Run.Advances)
	//
	rec = &textrender.Recording{}
	render(t, doc, rec, nil)
	assert.Empty(t, rec.GlyphRuns())
	assert.NotEmpty(t, rec.Geometries(), "embedded font drawn as outlines")
}

func TestRenderTextPath(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><path id="p" d="M0 50 L200 50"/>
		<text font-size="20"><textPath href="#p" startOffset="10">AB</textPath></text>
		<text><textPath href="#nowhere">C</textPath></text></svg>`)
	rec := &textrender.Recording{}
	render(t, doc, rec, nil)
	runs := rec.GlyphRuns()
	require.Len(t, runs, 2)
	p := runs[0].Positions()
	assert.InDelta(t, 10, p[0].X, 1e-6)
	assert.InDelta(t, 50, p[0].Y, 1e-6)
}

func TestRenderImages(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><text x="5" y="5">A<image href="i.png" width="4" height="4"/>B</text></svg>`)
	var images []gg.Point
	visit := func(n *html.Node, at gg.Point) {
		assert.Equal(t, "i.png", attr(n, "href"))
		images = append(images, at)
	}
	rec := &textrender.Recording{}
	render(t, doc, rec, visit)
	require.Len(t, images, 1)
	assert.Greater(t, images[0].X, 5.0)
	assert.InDelta(t, 5, images[0].Y, 1e-6)
	assert.Len(t, rec.GlyphRuns(), 2)
}

func TestRenderNeedsResolver(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><text>A</text></svg>`)
	err := doc.Render(&textrender.Recording{}, Options{})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestRenderGlyphIndices(t *testing.T) {
	teardown := qconf.QuickConfig(t)
	defer teardown()
	//
	doc := parse(t, `<svg><text glyph-indices="7">AB<tspan>C</tspan></text>
		<text glyph-indices="(2:1">broken</text><text y="40">D</text></svg>`)
	rec := &textrender.Recording{}
	reg := fontregistry.NewRegistry(testconfig.Conf{}, noFonts{})
	err := doc.Render(rec, Options{Resolver: doc.Resolver(reg, nil, nil)})
	assert.True(t, core.IsSyntaxError(err))
	runs := rec.GlyphRuns()
	require.Len(t, runs, 3, "the broken text element is not drawn")
	assert.Equal(t, font.GlyphIndex(7), runs[0].Run.Glyphs[0])
	assert.NotEqual(t, font.GlyphIndex(7), runs[1].Run.Glyphs[0], "not inherited by tspan")
	assert.InDelta(t, 40, runs[2].Positions()[0].Y, 1e-6)
}
