package svgfont

import (
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
)

// FontFace holds the attributes of a <font-face> element. Lengths are in
// font units (see UnitsPerEm), with y pointing upwards.
type FontFace struct {
	Family  string
	Style   string // CSS font-style, "all" or empty for normal
	Weight  string // CSS font-weight
	Stretch string
	Variant string

	UnitsPerEm             float64 // defaults to 1000
	Ascent                 float64
	Descent                float64
	XHeight                float64
	UnderlinePosition      float64
	UnderlineThickness     float64
	StrikethroughPosition  float64
	StrikethroughThickness float64
}

// Glyph is a <glyph> or <missing-glyph> element.
type Glyph struct {
	Unicode   string  // characters represented by the glyph
	Name      string  // glyph-name, used by kerning pairs
	HorizAdvX float64 // negative values inherit the font's horiz-adv-x
	VertAdvY  float64 // negative values inherit the font's vert-adv-y
	D         string  // outline as SVG path data
	outline   *gg.Path
}

// Kerning is a <hkern> or <vkern> element. U1 and U2 are comma separated
// lists of characters or unicode ranges ("U+0041-005A"), G1 and G2 lists
// of glyph names.
type Kerning struct {
	U1, G1 string
	U2, G2 string
	K      float64 // amount to decrease the spacing by, in font units
}

type kernPair struct {
	left, right font.GlyphIndex
}

// Font is an SVG font. It implements font.Typeface and font.ClusterMapper.
//
// Glyph indices are assigned in document order, starting at 1. Index 0 is
// the missing glyph.
type Font struct {
	ID        string
	Face      FontFace
	HorizAdvX float64
	VertAdvY  float64
	glyphs    []*Glyph
	byRune    map[rune]font.GlyphIndex
	clusters  map[rune][]font.GlyphIndex // multi-character glyphs, longest first
	byName    map[string][]font.GlyphIndex
	hkern     map[kernPair]float64
	vkern     map[kernPair]float64
	aspect    font.Aspect
}

var _ font.Typeface = (*Font)(nil)
var _ font.ClusterMapper = (*Font)(nil)

// New creates an empty SVG font from the attributes of a <font> element and
// its <font-face>. A vertAdvY of 0 is replaced by the font's units per em.
func New(id string, face FontFace, horizAdvX, vertAdvY float64) *Font {
	if face.UnitsPerEm <= 0 {
		face.UnitsPerEm = 1000
	}
	if vertAdvY <= 0 {
		vertAdvY = face.UnitsPerEm
	}
	f := &Font{
		ID:        id,
		Face:      face,
		HorizAdvX: horizAdvX,
		VertAdvY:  vertAdvY,
		glyphs:    []*Glyph{{HorizAdvX: -1, VertAdvY: -1}},
		byRune:    make(map[rune]font.GlyphIndex),
		clusters:  make(map[rune][]font.GlyphIndex),
		byName:    make(map[string][]font.GlyphIndex),
		hkern:     make(map[kernPair]float64),
		vkern:     make(map[kernPair]float64),
	}
	f.aspect = font.Aspect{
		Style:   font.ParseStyle(firstOf(face.Style)),
		Weight:  font.ParseWeight(firstOf(face.Weight), 0),
		Stretch: font.ParseStretch(firstOf(face.Stretch)),
		Variant: font.ParseVariant(face.Variant),
	}
	return f
}

// firstOf returns the first entry of a comma separated list; "all" counts
// as unset.
func firstOf(list string) string {
	s := strings.TrimSpace(strings.Split(list, ",")[0])
	if s == "all" {
		return ""
	}
	return s
}

// SetMissingGlyph defines the glyph drawn for characters not in the font.
func (f *Font) SetMissingGlyph(g Glyph) error {
	err := g.parseOutline()
	f.glyphs[0] = &g
	return err
}

// AddGlyph appends a glyph to the font and returns its index. If the glyph's
// path data is malformed, the glyph is kept without an outline and an error
// is returned.
func (f *Font) AddGlyph(g Glyph) (font.GlyphIndex, error) {
	err := g.parseOutline()
	gid := font.GlyphIndex(len(f.glyphs))
	f.glyphs = append(f.glyphs, &g)
	if g.Name != "" {
		f.byName[g.Name] = append(f.byName[g.Name], gid)
	}
	chars := []rune(g.Unicode)
	switch {
	case len(chars) == 1:
		if _, ok := f.byRune[chars[0]]; !ok { // first definition wins
			f.byRune[chars[0]] = gid
		}
	case len(chars) > 1:
		l := append(f.clusters[chars[0]], gid)
		sort.SliceStable(l, func(i, j int) bool {
			return len([]rune(f.glyphs[l[i]].Unicode)) > len([]rune(f.glyphs[l[j]].Unicode))
		})
		f.clusters[chars[0]] = l
	}
	return gid, err
}

func (g *Glyph) parseOutline() error {
	if strings.TrimSpace(g.D) == "" {
		return nil
	}
	p, err := gg.ParseSVGPath(g.D)
	if err != nil {
		return core.WrapError(err, core.ESYNTAX, "malformed path data for glyph %q", g.Unicode)
	}
	g.outline = p
	return nil
}

// AddKerning adds a horizontal or vertical kerning pair.
func (f *Font) AddKerning(k Kerning, vertical bool) {
	table := f.hkern
	if vertical {
		table = f.vkern
	}
	left := f.glyphSet(k.U1, k.G1)
	right := f.glyphSet(k.U2, k.G2)
	for _, l := range left {
		for _, r := range right {
			table[kernPair{l, r}] = k.K
		}
	}
}

func (f *Font) glyphSet(unicodes, names string) (set []font.GlyphIndex) {
	for _, u := range splitList(unicodes) {
		if from, to, ok := parseUnicodeRange(u); ok {
			for r := from; r <= to; r++ {
				if gid, ok := f.byRune[r]; ok {
					set = append(set, gid)
				}
			}
			continue
		}
		if chars := []rune(u); len(chars) == 1 {
			if gid, ok := f.byRune[chars[0]]; ok {
				set = append(set, gid)
			}
		}
	}
	for _, n := range splitList(names) {
		set = append(set, f.byName[n]...)
	}
	return
}

// --- Typeface --------------------------------------------------------------

// Family is part of interface font.Typeface.
func (f *Font) Family() string {
	return f.Face.Family
}

// Aspect is part of interface font.Typeface.
func (f *Font) Aspect() font.Aspect {
	return f.aspect
}

// GlyphIndex is part of interface font.Typeface.
func (f *Font) GlyphIndex(r rune) (font.GlyphIndex, bool) {
	if gid, ok := f.byRune[r]; ok {
		return gid, true
	}
	return font.NotDef, false
}

// MapCluster is part of interface font.ClusterMapper. It prefers the longest
// glyph matching a prefix of text.
func (f *Font) MapCluster(text []rune) (font.GlyphIndex, int, bool) {
	if len(text) == 0 {
		return font.NotDef, 0, false
	}
	for _, gid := range f.clusters[text[0]] {
		u := []rune(f.glyphs[gid].Unicode)
		if len(u) <= len(text) && string(u) == string(text[:len(u)]) {
			return gid, len(u), true
		}
	}
	gid, ok := f.GlyphIndex(text[0])
	return gid, 1, ok
}

// Advance is part of interface font.Typeface.
func (f *Font) Advance(gid font.GlyphIndex, sideways bool) float64 {
	g := f.glyph(gid)
	adv := g.HorizAdvX
	if sideways {
		if adv = g.VertAdvY; adv < 0 {
			adv = f.VertAdvY
		}
	} else if adv < 0 {
		adv = f.HorizAdvX
	}
	return f.toHundredths(adv)
}

// Kerning is part of interface font.Typeface. It consults the <hkern> pairs.
func (f *Font) Kerning(left, right font.GlyphIndex) float64 {
	if k, ok := f.hkern[kernPair{left, right}]; ok {
		return -f.toHundredths(k)
	}
	return 0
}

// VerticalKerning returns the <vkern> adjustment for a pair of glyphs.
func (f *Font) VerticalKerning(top, bottom font.GlyphIndex) float64 {
	if k, ok := f.vkern[kernPair{top, bottom}]; ok {
		return -f.toHundredths(k)
	}
	return 0
}

// Outline is part of interface font.Typeface. The glyph's path data is
// scaled to emSize and flipped to y pointing down.
func (f *Font) Outline(gid font.GlyphIndex, emSize float64) *gg.Path {
	g := f.glyph(gid)
	if g.outline == nil || emSize <= 0 {
		return nil
	}
	s := emSize / f.Face.UnitsPerEm
	return g.outline.Transform(gg.Scale(s, -s))
}

// Metrics is part of interface font.Typeface. Attributes missing from the
// <font-face> are taken from the default metrics.
func (f *Font) Metrics() font.Metrics {
	m := font.DefaultMetrics()
	face := f.Face
	if face.Ascent > 0 {
		m.Ascent = f.toHundredths(face.Ascent)
	}
	if face.Descent != 0 { // sign varies between producers
		m.Descent = f.toHundredths(abs(face.Descent))
	}
	if face.XHeight > 0 {
		m.XHeight = f.toHundredths(face.XHeight)
	}
	if face.UnderlineThickness > 0 {
		m.UnderlineThickness = f.toHundredths(face.UnderlineThickness)
		m.UnderlineOffset = -f.toHundredths(face.UnderlinePosition) + m.UnderlineThickness/2
	}
	if face.StrikethroughThickness > 0 {
		m.StrikeoutThickness = f.toHundredths(face.StrikethroughThickness)
		m.StrikeoutOffset = -f.toHundredths(face.StrikethroughPosition) + m.StrikeoutThickness/2
	}
	return m
}

// GlyphCount returns the number of glyphs, including the missing glyph.
func (f *Font) GlyphCount() int {
	return len(f.glyphs)
}

func (f *Font) glyph(gid font.GlyphIndex) *Glyph {
	if int(gid) >= len(f.glyphs) {
		tracer().Debugf("SVG font %q has no glyph %d", f.Face.Family, gid)
		return f.glyphs[0]
	}
	return f.glyphs[gid]
}

func (f *Font) toHundredths(v float64) float64 {
	return v * 100 / f.Face.UnitsPerEm
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
