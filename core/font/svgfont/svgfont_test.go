package svgfont

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T) *Font {
	f := New("brand", FontFace{Family: "Brand", Ascent: 800, Descent: -200}, 500, 0)
	require.NoError(t, f.SetMissingGlyph(Glyph{HorizAdvX: 400, VertAdvY: -1, D: "M0 0 H400 V700 H0 Z"}))
	for _, g := range []Glyph{
		{Unicode: "A", Name: "A", HorizAdvX: 600, VertAdvY: -1, D: "M0 0 L300 700 L600 0 Z"},
		{Unicode: "V", Name: "V", HorizAdvX: -1, VertAdvY: 900, D: "M0 700 L250 0 L500 700 Z"},
		{Unicode: "f", Name: "f", HorizAdvX: 300, VertAdvY: -1},
		{Unicode: "fi", Name: "f_i", HorizAdvX: 550, VertAdvY: -1},
		{Unicode: "ffi", Name: "f_f_i", HorizAdvX: 800, VertAdvY: -1},
	} {
		_, err := f.AddGlyph(g)
		require.NoError(t, err)
	}
	f.AddKerning(Kerning{U1: "A", G2: "V", K: 100}, false)
	f.AddKerning(Kerning{U1: "U+0056", U2: "U+0041-0042", K: 50}, false)
	return f
}

func TestGlyphTable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := testFont(t)
	assert.Equal(t, 6, f.GlyphCount())
	gid, ok := f.GlyphIndex('A')
	require.True(t, ok)
	assert.Equal(t, font.GlyphIndex(1), gid)
	assert.InDelta(t, 60.0, f.Advance(gid, false), 1e-9)
	assert.InDelta(t, 100.0, f.Advance(gid, true), 1e-9)
	gid, _ = f.GlyphIndex('V')
	assert.InDelta(t, 50.0, f.Advance(gid, false), 1e-9)
	assert.InDelta(t, 90.0, f.Advance(gid, true), 1e-9)
	//
	gid, ok = f.GlyphIndex('x')
	assert.False(t, ok)
	assert.Equal(t, font.NotDef, gid)
	assert.InDelta(t, 40.0, f.Advance(gid, false), 1e-9)
}

func TestLigatures(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := testFont(t)
	gid, n, ok := f.MapCluster([]rune("ffix"))
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, font.GlyphIndex(5), gid)
	_, n, _ = f.MapCluster([]rune("fix"))
	assert.Equal(t, 2, n)
	_, n, _ = f.MapCluster([]rune("ff"))
	assert.Equal(t, 1, n)
	_, n, ok = f.MapCluster(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestKerning(t *testing.T) {
	f := testFont(t)
	a, _ := f.GlyphIndex('A')
	v, _ := f.GlyphIndex('V')
	assert.InDelta(t, -10.0, f.Kerning(a, v), 1e-9)
	assert.InDelta(t, -5.0, f.Kerning(v, a), 1e-9)
	assert.Equal(t, 0.0, f.Kerning(a, a))
	assert.Equal(t, 0.0, f.VerticalKerning(a, v))
}

func TestOutlineAndMetrics(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := testFont(t)
	gid, _ := f.GlyphIndex('A')
	p := f.Outline(gid, 10)
	require.NotNil(t, p)
	box := p.BoundingBox()
	assert.InDelta(t, 6.0, box.Max.X, 1e-9)
	assert.InDelta(t, -7.0, box.Min.Y, 1e-9)
	gid, _ = f.GlyphIndex('f')
	assert.Nil(t, f.Outline(gid, 10))
	//
	m := f.Metrics()
	assert.InDelta(t, 80.0, m.Ascent, 1e-9)
	assert.InDelta(t, 20.0, m.Descent, 1e-9)
}

func TestMalformedGlyph(t *testing.T) {
	f := New("", FontFace{Family: "Broken"}, 1000, 0)
	gid, err := f.AddGlyph(Glyph{Unicode: "x", D: "M 0 0 L foo", HorizAdvX: -1, VertAdvY: -1})
	require.Error(t, err)
	assert.True(t, core.IsSyntaxError(err))
	assert.Nil(t, f.Outline(gid, 12))
	assert.InDelta(t, 100.0, f.Advance(gid, false), 1e-9)
}

func TestAspectFromFace(t *testing.T) {
	f := New("", FontFace{Family: "Brand", Style: "italic", Weight: "bold, normal"}, 500, 0)
	assert.Equal(t, font.StyleItalic, f.Aspect().Style)
	assert.Equal(t, font.WeightBold, f.Aspect().Weight)
	f = New("", FontFace{Family: "Brand", Style: "all"}, 500, 0)
	assert.Equal(t, font.StyleNormal, f.Aspect().Style)
	assert.Equal(t, font.WeightNormal, f.Aspect().Weight)
}

func TestCollection(t *testing.T) {
	c := NewCollection(
		New("a", FontFace{Family: "Brand"}, 500, 0),
		New("b", FontFace{Family: ""}, 500, 0),
		New("c", FontFace{Family: "brand", Style: "italic"}, 500, 0),
	)
	assert.Equal(t, 2, c.Len())
	fonts := c.Lookup("BRAND")
	require.Len(t, fonts, 2)
	assert.Equal(t, "a", fonts[0].ID)
	f, ok := c.ByID("c")
	require.True(t, ok)
	assert.Equal(t, font.StyleItalic, f.Aspect().Style)
	var nilc *Collection
	assert.Nil(t, nilc.Lookup("Brand"))
}

func TestUnicodeRanges(t *testing.T) {
	from, to, ok := parseUnicodeRange("U+00??")
	require.True(t, ok)
	assert.Equal(t, rune(0), from)
	assert.Equal(t, rune(0xff), to)
	_, _, ok = parseUnicodeRange("U+0050-0040")
	assert.False(t, ok)
	_, _, ok = parseUnicodeRange("A")
	assert.False(t, ok)
}
