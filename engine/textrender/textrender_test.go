package textrender

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/npillmayer/svgtext/core/font/svgfont"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capitals has glyphs for 'A'…'Z', 50/100 em wide and 100/100 em high.
type capitals struct{}

func (capitals) Family() string      { return "Capitals" }
func (capitals) Aspect() font.Aspect { return font.NormalAspect }
func (capitals) GlyphIndex(r rune) (font.GlyphIndex, bool) {
	if r >= 'A' && r <= 'Z' {
		return font.GlyphIndex(r - 'A' + 1), true
	}
	return font.NotDef, false
}
func (capitals) Advance(gid font.GlyphIndex, sideways bool) float64 {
	if sideways {
		return 100
	}
	return 50
}
func (capitals) Kerning(l, r font.GlyphIndex) float64      { return 0 }
func (capitals) Outline(font.GlyphIndex, float64) *gg.Path { return nil }
func (capitals) Metrics() font.Metrics                     { return font.DefaultMetrics() }

// textRun creates a run of 10 units per character.
func textRun(text string) *style.TextRun {
	return &style.TextRun{
		Text:    text,
		Font:    &fontregistry.FontFamilyInfo{Family: "Capitals", Typeface: capitals{}},
		EmSize:  20,
		Fill:    style.Black,
		Kerning: true,
	}
}

func scalar() placement.TextPlacement {
	return placement.TextPlacement{}
}

func TestSelectKind(t *testing.T) {
	assert.Equal(t, Horizontal, SelectKind(style.HorizontalTB, false))
	assert.Equal(t, Vertical, SelectKind(style.VerticalRL, false))
	assert.Equal(t, OnPath, SelectKind(style.VerticalLR, true))
}

func TestRenderOnPathKindFails(t *testing.T) {
	r := NewRenderer(OnPath, &Recording{}, nil)
	cursor := gg.Point{}
	err := r.RenderRun(textRun("A"), &cursor, 0, scalar())
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestHorizontalAnchors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, tc := range []struct {
		anchor          style.Anchor
		originX, afterX float64
	}{
		{style.AnchorStart, 5, 35},
		{style.AnchorMiddle, -10, 20},
		{style.AnchorEnd, -25, 5},
	} {
		rec := &Recording{}
		r := NewRenderer(Horizontal, rec, nil)
		run := textRun("ABC")
		run.Anchor = tc.anchor
		cursor := gg.Point{X: 5, Y: 7}
		require.NoError(t, r.RenderRun(run, &cursor, 0, scalar()))
		runs := rec.GlyphRuns()
		require.Len(t, runs, 1, tc.anchor.String())
		assert.Equal(t, gg.Point{X: tc.originX, Y: 7}, runs[0].Origin, tc.anchor.String())
		assert.InDelta(t, tc.afterX, cursor.X, 1e-9, tc.anchor.String())
		assert.Equal(t, 7.0, cursor.Y)
	}
}

func TestBaseRotation(t *testing.T) {
	rec := &Recording{}
	r := NewRenderer(Horizontal, rec, nil)
	cursor := gg.Point{X: 10, Y: 10}
	require.NoError(t, r.RenderRun(textRun("AB"), &cursor, 90, scalar()))
	pos := rec.GlyphRuns()[0].Positions()
	assert.InDelta(t, 10.0, pos[1].X, 1e-9)
	assert.InDelta(t, 20.0, pos[1].Y, 1e-9)
	assert.InDelta(t, 10.0, cursor.X, 1e-9)
	assert.InDelta(t, 30.0, cursor.Y, 1e-9)
}

func TestRoundTripAdvance(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	run := textRun("AVATAR Wolf, 1927")
	run.Font = &fontregistry.FontFamilyInfo{Family: font.GoFamily, Typeface: font.FallbackFont()}
	fast := gg.Point{}
	r := NewRenderer(Horizontal, &Recording{}, nil)
	require.NoError(t, r.RenderRun(run, &fast, 0, scalar()))
	//
	rec := &Recording{}
	r = NewRenderer(Horizontal, rec, nil)
	slow := gg.Point{}
	pl := placement.Resolve(placement.Attributes{Rotate: []float64{0, 0}}, slow, false)
	require.NoError(t, r.RenderRun(run, &slow, 0, pl))
	assert.Len(t, rec.GlyphRuns(), len([]rune(run.Text)))
	assert.InDelta(t, fast.X, slow.X, 1e-4)
	sum := 0.0
	for _, p := range rec.GlyphRuns() {
		sum += p.Run.Width()
	}
	assert.InDelta(t, fast.X, sum, 1e-4)
}

func TestSpacing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	render := func(run *style.TextRun) (float64, []GlyphRunPrimitive) {
		rec := &Recording{}
		cursor := gg.Point{}
		require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
		return cursor.X, rec.GlyphRuns()
	}
	run := textRun("A B")
	run.LetterSpacing, run.HasLetterSpacing = 2, true
	x, runs := render(run)
	assert.Equal(t, 36.0, x)
	require.Len(t, runs, 3)
	assert.Equal(t, 24.0, runs[2].Origin.X)
	//
	run = textRun("A B")
	run.WordSpacing, run.HasWordSpacing = 5, true
	x, _ = render(run)
	assert.Equal(t, 25.0, x, "word-spacing alone replaces the advance of spaces")
	//
	run.LetterSpacing, run.HasLetterSpacing = 2, true
	x, _ = render(run)
	assert.Equal(t, 41.0, x, "word-spacing is added with letter-spacing set")
}

func TestTextChunks(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rec := &Recording{}
	run := textRun("AB")
	run.Anchor = style.AnchorEnd
	cursor := gg.Point{}
	pl := placement.Resolve(placement.Attributes{X: []float64{0, 100}, Y: []float64{5}}, cursor, false)
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, pl))
	runs := rec.GlyphRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, gg.Point{X: -10, Y: 5}, runs[0].Origin)
	assert.Equal(t, gg.Point{X: 90, Y: 5}, runs[1].Origin)
	assert.Equal(t, gg.Point{X: 100, Y: 5}, cursor)
}

func TestCharacterRotation(t *testing.T) {
	rec := &Recording{}
	cursor := gg.Point{}
	pl := placement.Resolve(placement.Attributes{Rotate: []float64{0, 90}}, cursor, false)
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(textRun("AB"), &cursor, 0, pl))
	runs := rec.GlyphRuns()
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Transform.IsIdentity())
	// B is rotated around its own origin at (10,0)
	assert.InDelta(t, 10.0, runs[1].Transform.TransformPoint(gg.Point{X: 10}).X, 1e-9)
	assert.InDelta(t, 10.0, runs[1].Transform.TransformPoint(gg.Point{X: 20}).Y, 1e-9)
	assert.Equal(t, 20.0, cursor.X)
}

func TestStrokeOnlyOutlines(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	run := textRun("HI")
	run.Font = &fontregistry.FontFamilyInfo{Family: font.GoFamily, Typeface: font.FallbackFont()}
	run.Fill, run.Stroke = style.NoPaint, style.Black
	rec := &Recording{}
	cursor := gg.Point{X: 10, Y: 50}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	assert.Empty(t, rec.GlyphRuns())
	geoms := rec.Geometries()
	require.Len(t, geoms, 1)
	assert.Equal(t, GlyphOutline, geoms[0].Kind)
	assert.False(t, geoms[0].Path.HasCurves(), "outlines are flattened")
	bb := geoms[0].Path.BoundingBox()
	assert.True(t, bb.Min.X >= 10 && bb.Max.X <= cursor.X+1)
	assert.True(t, bb.Max.Y <= 50.5, "glyphs sit on the baseline")
}

func TestDecorations(t *testing.T) {
	rec := &Recording{}
	run := textRun("ABC")
	run.Decoration = style.Underline | style.LineThrough
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	geoms := rec.Geometries()
	require.Len(t, geoms, 2)
	for _, g := range geoms {
		assert.Equal(t, DecorationLine, g.Kind)
		bb := g.Path.BoundingBox()
		assert.InDelta(t, 30.0, bb.Max.X-bb.Min.X, 1e-9)
	}
	assert.Greater(t, geoms[0].Path.BoundingBox().Min.Y, 0.0, "underline below baseline")
	assert.Less(t, geoms[1].Path.BoundingBox().Max.Y, 0.0, "line-through above baseline")
}

func TestRightToLeft(t *testing.T) {
	rec := &Recording{}
	run := textRun("(AB")
	run.Direction = glyphing.RightToLeft
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	runs := rec.GlyphRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, "BA)", string(runs[0].Run.Chars))
	assert.Equal(t, uint8(1), runs[0].Run.BidiLevel)
}

func TestEmbeddedFonts(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	emb := svgfont.New("brand", svgfont.FontFace{Family: "Brand"}, 500, 0)
	_, err := emb.AddGlyph(svgfont.Glyph{Unicode: "A", HorizAdvX: -1, VertAdvY: -1, D: "M0,0 L500,0 L250,700 Z"})
	require.NoError(t, err)
	alternate := &fontregistry.FontFamilyInfo{Family: "sans-serif", Typeface: font.FallbackFont()}
	run := textRun("A")
	run.Font = &fontregistry.FontFamilyInfo{Family: "Brand", Typeface: emb, Embedded: emb, Alternate: alternate}
	//
	rec := &Recording{Embedded: true}
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	require.Len(t, rec.GlyphRuns(), 1)
	assert.Equal(t, font.Typeface(emb), rec.GlyphRuns()[0].Typeface)
	//
	rec = &Recording{}
	cursor = gg.Point{}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	assert.Empty(t, rec.GlyphRuns())
	require.Len(t, rec.Geometries(), 1)
	assert.InDelta(t, 10.0, cursor.X, 1e-9)
	//
	rec = &Recording{}
	cursor = gg.Point{}
	r := NewRenderer(Horizontal, rec, nil)
	r.EmbeddedAsOutlines = false
	require.NoError(t, r.RenderRun(run, &cursor, 0, scalar()))
	require.Len(t, rec.GlyphRuns(), 1)
	assert.Equal(t, font.Typeface(font.FallbackFont()), rec.GlyphRuns()[0].Typeface)
}

func TestExplicitGlyphs(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rec := &Recording{}
	run := textRun("AB")
	run.GlyphIndices = "7,100"
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	runs := rec.GlyphRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, []font.GlyphIndex{7, 2}, runs[0].Run.Glyphs)
	assert.Equal(t, 30.0, cursor.X)
	//
	rec = &Recording{}
	run.GlyphIndices = "(2:1"
	err := NewRenderer(Horizontal, rec, nil).RenderRun(run, &cursor, 0, scalar())
	assert.True(t, core.IsSyntaxError(err))
	assert.Empty(t, rec.Items)
}

// --- Vertical --------------------------------------------------------------

func TestSplitVertical(t *testing.T) {
	runs := SplitVertical("A漢B")
	require.Len(t, runs, 3)
	assert.Equal(t, VerticalRun{Text: "A", Start: 0, Latin: true}, runs[0])
	assert.Equal(t, VerticalRun{Text: "漢", Start: 1, Latin: false}, runs[1])
	assert.Equal(t, VerticalRun{Text: "B", Start: 2, Latin: true}, runs[2])
	assert.Len(t, SplitVertical("漢字"), 1)
	assert.Empty(t, SplitVertical(""))
}

func TestVerticalOrientations(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, tc := range []struct {
		orientation float64
		advance     float64 // of 漢
	}{
		{0, 20},
		{style.OrientationAuto, 10},
		{90, 10},
		{180, 20},
	} {
		rec := &Recording{}
		run := textRun("A漢")
		run.WritingMode = style.VerticalRL
		run.GlyphOrientationVertical = tc.orientation
		cursor := gg.Point{X: 50}
		require.NoError(t, NewRenderer(Vertical, rec, nil).RenderRun(run, &cursor, 0, scalar()))
		// A: width 10 plus half its advance
		assert.InDelta(t, 15+tc.advance, cursor.Y, 1e-9, "orientation %g", tc.orientation)
		assert.Equal(t, 50.0, cursor.X)
		runs := rec.GlyphRuns()
		require.Len(t, runs, 2)
		assert.False(t, runs[0].Run.Sideways)
		end := runs[0].Transform.TransformPoint(gg.Point{X: 60})
		assert.InDelta(t, 50.0, end.X, 1e-9, "Latin text is rotated by 90°")
		assert.InDelta(t, 10.0, end.Y, 1e-9)
		if tc.orientation == 0 || tc.orientation == style.OrientationAuto {
			assert.True(t, runs[1].Run.Sideways)
			assert.Equal(t, gg.Point{X: 50, Y: 15}, runs[1].Origin)
		}
	}
}

func TestVerticalAnchorEnd(t *testing.T) {
	rec := &Recording{}
	run := textRun("漢漢")
	run.Anchor = style.AnchorEnd
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Vertical, rec, nil).RenderRun(run, &cursor, 0, scalar()))
	require.Len(t, rec.GlyphRuns(), 1)
	assert.Equal(t, gg.Point{X: 0, Y: -40}, rec.GlyphRuns()[0].Origin)
	assert.Equal(t, gg.Point{}, cursor)
}

func vertical(t *testing.T, run *style.TextRun, pl placement.TextPlacement) (gg.Point, []GlyphRunPrimitive) {
	rec := &Recording{}
	run.WritingMode = style.VerticalRL
	cursor := gg.Point{}
	require.NoError(t, NewRenderer(Vertical, rec, nil).RenderRun(run, &cursor, 0, pl))
	return cursor, rec.GlyphRuns()
}

func TestVerticalSpacing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cursor, runs := vertical(t, textRun("AB"), scalar())
	assert.Equal(t, gg.Point{Y: 25}, cursor)
	assert.Len(t, runs, 1)
	//
	run := textRun("AB")
	run.LetterSpacing, run.HasLetterSpacing = 5, true
	cursor, runs = vertical(t, run, scalar())
	assert.InDelta(t, 35.0, cursor.Y, 1e-9)
	require.Len(t, runs, 2)
	assert.Equal(t, gg.Point{Y: 15}, runs[1].Origin)
	//
	run = textRun("A 漢")
	run.WordSpacing, run.HasWordSpacing = 3, true
	cursor, runs = vertical(t, run, scalar())
	require.Len(t, runs, 3)
	assert.Equal(t, gg.Point{Y: 13}, runs[2].Origin, "word-spacing replaces the advance of the space")
	assert.InDelta(t, 33.0, cursor.Y, 1e-9)
	//
	pl := placement.Resolve(placement.Attributes{Rotate: []float64{0, 0}}, gg.Point{}, false)
	cursor, _ = vertical(t, textRun("AB"), pl)
	assert.InDelta(t, 25.0, cursor.Y, 1e-9, "same advance character by character")
}

func TestVerticalCharacterPlacement(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	pl := placement.Resolve(placement.Attributes{Rotate: []float64{0, 45, 90}}, gg.Point{}, false)
	_, runs := vertical(t, textRun("ABC"), pl)
	require.Len(t, runs, 3)
	dir := runs[1].Transform.TransformVector(gg.Point{X: 1})
	assert.InDelta(t, 3*math.Pi/4, math.Atan2(dir.Y, dir.X), 1e-9, "90° for Latin plus 45°")
	end := runs[2].Transform.TransformPoint(gg.Point{X: 10, Y: 20})
	assert.InDelta(t, -10.0, end.X, 1e-9)
	assert.InDelta(t, 20.0, end.Y, 1e-9)
	//
	pl = placement.Resolve(placement.Attributes{Y: []float64{0, 100}, DX: []float64{0, 7}}, gg.Point{}, false)
	cursor, runs := vertical(t, textRun("AB"), pl)
	require.Len(t, runs, 2)
	assert.Equal(t, gg.Point{X: 0, Y: 0}, runs[0].Origin)
	assert.Equal(t, gg.Point{X: 7, Y: 100}, runs[1].Origin)
	assert.Equal(t, gg.Point{X: 7, Y: 115}, cursor)
}

func TestVerticalPathMeasure(t *testing.T) {
	r := NewRenderer(OnPath, &Recording{}, nil)
	run := textRun("A漢")
	chars, err := r.MeasureRun(run, run.Text, gg.Point{}, scalar())
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, 10.0, chars[1].Advance)
	//
	run.WritingMode = style.VerticalRL
	chars, err = r.MeasureRun(run, run.Text, gg.Point{}, scalar())
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, 10.0, chars[0].Advance)
	assert.Equal(t, 20.0, chars[1].Advance, "height advance")
}

// --- Text on a path --------------------------------------------------------

func line(length float64) *gg.Path {
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(length, 0)
	return p
}

func pathText(t *testing.T, texts ...string) (*PathTextBuilder, *Recording) {
	rec := &Recording{}
	b := NewRenderer(OnPath, rec, nil).BeginPath()
	for _, text := range texts {
		require.NoError(t, b.AddRun(textRun(text), text, gg.Point{}, scalar()))
	}
	return b, rec
}

func centers(rec *Recording) []float64 {
	var xs []float64
	for _, p := range rec.GlyphRuns() {
		xs = append(xs, p.Transform.TransformPoint(gg.Point{}).X)
	}
	return xs
}

func TestPathForward(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	b, rec := pathText(t, "A", "B")
	require.Len(t, b.Measured().Chars, 2)
	assert.Equal(t, 1, b.Measured().Chars[1].RunIndex)
	res := b.RenderOntoPath(line(100), PathOptions{})
	assert.Equal(t, 2, res.Drawn)
	assert.InDelta(t, 0.2, res.Progress, 1e-9)
	assert.InDelta(t, 100.0, res.Length, 1e-9)
	xs := centers(rec)
	assert.InDeltaSlice(t, []float64{5, 15}, xs, 1e-9)
	assert.InDelta(t, 0.0, rec.GlyphRuns()[0].Positions()[0].X, 1e-9)
}

func TestPathStartOffsets(t *testing.T) {
	b, rec := pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.Length{Value: 50, Unit: dimen.Percent}})
	assert.InDeltaSlice(t, []float64{55, 65}, centers(rec), 1e-9)
	//
	b, rec = pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{TextStartOffset: dimen.U(20)})
	assert.InDeltaSlice(t, []float64{25, 35}, centers(rec), 1e-9)
	//
	b, rec = pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.U(10), TextStartOffset: dimen.U(20)})
	assert.InDeltaSlice(t, []float64{15, 25}, centers(rec), 1e-9)
}

func TestPathEndAligned(t *testing.T) {
	b, rec := pathText(t, "AB")
	res := b.RenderOntoPath(line(100), PathOptions{Anchor: style.AnchorEnd})
	assert.Equal(t, 2, res.Drawn)
	assert.InDelta(t, 0.8, res.Progress, 1e-9)
	assert.InDeltaSlice(t, []float64{95, 85}, centers(rec), 1e-9, "drawn back to front")
	//
	b, rec = pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.U(-20)})
	assert.InDeltaSlice(t, []float64{75, 65}, centers(rec), 1e-9)
}

func TestPathTextLength(t *testing.T) {
	b, rec := pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{TextLength: 10})
	assert.InDeltaSlice(t, []float64{2.5, 7.5}, centers(rec), 1e-9)
	//
	b, rec = pathText(t, "AB")
	b.RenderOntoPath(line(100), PathOptions{TextLength: 8})
	assert.InDeltaSlice(t, []float64{5, 15}, centers(rec), 1e-9, "factor below minimum is ignored")
}

func TestPathDegenerate(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	b, rec := pathText(t)
	res := b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.U(10)})
	assert.Equal(t, 0, res.Drawn)
	assert.InDelta(t, 0.1, res.Progress, 1e-9)
	assert.Empty(t, rec.Items)
	//
	b, _ = pathText(t, "W")
	res = b.RenderOntoPath(line(8), PathOptions{})
	assert.LessOrEqual(t, res.Drawn, 1)
	//
	b, rec = pathText(t, "AB")
	res = b.RenderOntoPath(gg.NewPath(), PathOptions{})
	assert.Equal(t, PathResult{}, res)
	assert.Empty(t, rec.Items)
	//
	b, rec = pathText(t, "AB")
	res = b.RenderOntoPath(line(14), PathOptions{})
	assert.Equal(t, 1, res.Drawn, "B does not fit")
}

func TestPathSubpathsContinue(t *testing.T) {
	p := line(10)
	p.MoveTo(100, 50)
	p.LineTo(100, 150)
	b, rec := pathText(t, "AB")
	res := b.RenderOntoPath(p, PathOptions{})
	assert.InDelta(t, 110.0, res.Length, 1e-9)
	require.Equal(t, 2, res.Drawn)
	runs := rec.GlyphRuns()
	assert.InDelta(t, 5.0, runs[0].Transform.TransformPoint(gg.Point{}).X, 1e-9)
	second := runs[1].Transform.TransformPoint(gg.Point{})
	assert.InDelta(t, 100.0, second.X, 1e-9)
	assert.InDelta(t, 55.0, second.Y, 1e-9)
	// rotated to the direction of the second subpath
	dir := runs[1].Transform.TransformVector(gg.Point{X: 1})
	assert.InDelta(t, math.Pi/2, math.Atan2(dir.Y, dir.X), 1e-9)
}

func TestPathLargeOffsets(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, off := range []float64{-1e20, -1e300, -250} {
		b, _ := pathText(t, "AB")
		res := b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.U(off)})
		assert.GreaterOrEqual(t, res.Progress, 0.0, "offset %g", off)
		assert.LessOrEqual(t, res.Progress, 1.0, "offset %g", off)
	}
	b, rec := pathText(t, "AB")
	res := b.RenderOntoPath(line(100), PathOptions{StartOffset: dimen.U(math.Inf(-1))})
	assert.Equal(t, 0, res.Drawn)
	assert.Empty(t, rec.Items)
	//
	assert.Equal(t, 1.0, normalizeProgress(1))
	assert.Equal(t, 1.0, normalizeProgress(3))
	assert.InDelta(t, 0.5, normalizeProgress(2.5), 1e-9)
	assert.InDelta(t, 0.75, normalizeProgress(-1.25), 1e-9)
	assert.Equal(t, 0.0, normalizeProgress(-1e18))
}
