package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"golang.org/x/text/language"
)

// DefaultFontSize is the CSS font size "medium".
const DefaultFontSize = 16.0

// Decoration is a set of text decorations.
type Decoration uint8

// Text decorations.
const (
	Underline Decoration = 1 << iota
	Overline
	LineThrough
)

// Has is true if all decorations of e are in d.
func (d Decoration) Has(e Decoration) bool {
	return d&e == e
}

// Anchor is the alignment of text relative to its reference point.
type Anchor uint8

// Text anchors.
const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	}
	return "start"
}

// WritingMode is the block flow direction of text.
type WritingMode uint8

// Writing modes.
const (
	HorizontalTB WritingMode = iota
	VerticalRL
	VerticalLR
)

// IsVertical is true for vertical writing modes.
func (wm WritingMode) IsVertical() bool {
	return wm != HorizontalTB
}

// OrientationAuto is the glyph orientation "auto".
const OrientationAuto = -1.0

// TextRun is a run of text with uniform style. Runs are created by clients
// and consumed read-only by renderers.
type TextRun struct {
	Text                       string
	Font                       *fontregistry.FontFamilyInfo
	EmSize                     float64
	Language                   language.Tag
	LetterSpacing              float64
	WordSpacing                float64
	HasLetterSpacing           bool
	HasWordSpacing             bool
	Decoration                 Decoration
	Anchor                     Anchor
	Direction                  glyphing.Direction // LeftToRight or RightToLeft
	WritingMode                WritingMode
	GlyphOrientationVertical   float64 // degrees or OrientationAuto
	GlyphOrientationHorizontal float64 // degrees
	Kerning                    bool
	Fill                       Paint
	Stroke                     Paint
	StrokeWidth                float64
	GlyphIndices               string // explicit glyphs, see glyphing.BuildIndices
}

// Typeface returns the typeface of a run.
func (run *TextRun) Typeface() font.Typeface {
	if run.Font == nil || run.Font.Typeface == nil {
		return font.FallbackFont()
	}
	return run.Font.Typeface
}

// IsStrokeOnly is true for runs with a stroke paint but without fill.
func (run *TextRun) IsStrokeOnly() bool {
	return run.Stroke.Set && !run.Fill.Set
}

// HasSpacing is true if letter- or word-spacing is set.
func (run *TextRun) HasSpacing() bool {
	return run.HasLetterSpacing || run.HasWordSpacing
}

// WithText returns a copy of a run for another text.
func (run *TextRun) WithText(text string) *TextRun {
	r := *run
	r.Text = text
	return &r
}

func (run *TextRun) String() string {
	return fmt.Sprintf("run[%q %s %gpx]", run.Text, run.Font, run.EmSize)
}

// NewTextRun interprets the properties of text. Font families are resolved
// with resolver. parentSize is the font size of the parent element, used for
// relative font sizes; 0 selects the default font size.
func NewTextRun(text string, props Properties, resolver *fontregistry.Resolver,
	parentSize float64) *TextRun {
	//
	run := &TextRun{
		Text:                     text,
		EmSize:                   props.FontSize(parentSize),
		Language:                 props.Language(),
		Fill:                     Black,
		Kerning:                  true,
		GlyphOrientationVertical: 0,
		StrokeWidth:              1,
	}
	ctx := dimen.Context{FontSize: run.EmSize, Reference: run.EmSize}
	run.LetterSpacing, run.HasLetterSpacing = props.spacing("letter-spacing", ctx)
	run.WordSpacing, run.HasWordSpacing = props.spacing("word-spacing", ctx)
	run.Decoration = ParseDecoration(props.Get("text-decoration").String())
	run.Anchor = ParseAnchor(props.Get("text-anchor").String())
	if props.Get("direction").String() == "rtl" {
		run.Direction = glyphing.RightToLeft
	}
	run.WritingMode = ParseWritingMode(props.Get("writing-mode").String())
	if v := props.Get("glyph-orientation-vertical"); !v.IsEmpty() {
		run.GlyphOrientationVertical = ParseOrientation(v.String())
	}
	if v := props.Get("glyph-orientation-horizontal"); !v.IsEmpty() {
		if run.GlyphOrientationHorizontal = ParseOrientation(v.String()); run.GlyphOrientationHorizontal < 0 {
			run.GlyphOrientationHorizontal = 0
		}
	}
	k := strings.ToLower(props.Get("kerning").String())
	fk := strings.ToLower(props.Get("font-kerning").String())
	run.Kerning = !(k == "0" || fk == "none")
	if v := props.Get("fill"); !v.IsEmpty() {
		run.Fill = v.Paint()
	}
	run.Stroke = props.Get("stroke").Paint()
	run.GlyphIndices = strings.TrimSpace(props.Get("glyph-indices").String())
	if l, err := dimen.ParseLength(props.Get("stroke-width").String()); err == nil {
		run.StrokeWidth = math.Max(0, l.Resolve(ctx))
	}
	if resolver != nil {
		chain := fontregistry.ParseFamilyList(props.Get("font-family").String())
		run.Font = resolver.Resolve(chain,
			font.ParseWeight(props.Get("font-weight").String(), 0),
			font.ParseStyle(props.Get("font-style").String()),
			font.ParseStretch(props.Get("font-stretch").String()),
			font.ParseVariant(props.Get("font-variant").String()))
	}
	tracer().Debugf("styled %s", run)
	return run
}

// --- Property interpretation -----------------------------------------------

var fontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32,
}

// FontSize interprets the font-size property. Percentages and em values are
// relative to parentSize.
func (p Properties) FontSize(parentSize float64) float64 {
	if parentSize <= 0 {
		parentSize = DefaultFontSize
	}
	s := strings.ToLower(p.Get("font-size").String())
	switch s {
	case "":
		return parentSize
	case "larger":
		return parentSize * 1.2
	case "smaller":
		return parentSize / 1.2
	}
	if size, ok := fontSizeKeywords[s]; ok {
		return size
	}
	l, err := dimen.ParseLength(s)
	if err != nil || l.Value < 0 {
		tracer().Infof("cannot interpret font-size %q", s)
		return parentSize
	}
	return l.Resolve(dimen.Context{FontSize: parentSize, Reference: parentSize})
}

// Language interprets the lang property.
func (p Properties) Language() language.Tag {
	s := p.Get("lang").String()
	if s == "" {
		s = p.Get("xml:lang").String()
	}
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		tracer().Infof("unknown language %q", s)
		return language.Und
	}
	return tag
}

func (p Properties) spacing(key string, ctx dimen.Context) (float64, bool) {
	s := p.Get(key).String()
	if s == "" || s == "normal" {
		return 0, false
	}
	l, err := dimen.ParseLength(s)
	if err != nil {
		tracer().Infof("cannot interpret %s %q", key, s)
		return 0, false
	}
	return l.Resolve(ctx), true
}

// ParseDecoration interprets a text-decoration value.
func ParseDecoration(s string) (d Decoration) {
	for _, f := range strings.Fields(strings.ToLower(s)) {
		switch f {
		case "underline":
			d |= Underline
		case "overline":
			d |= Overline
		case "line-through":
			d |= LineThrough
		}
	}
	return
}

// ParseAnchor interprets a text-anchor value.
func ParseAnchor(s string) Anchor {
	switch strings.ToLower(s) {
	case "middle":
		return AnchorMiddle
	case "end":
		return AnchorEnd
	}
	return AnchorStart
}

// ParseWritingMode interprets a writing-mode value, in SVG 1.1 and CSS syntax.
func ParseWritingMode(s string) WritingMode {
	switch strings.ToLower(s) {
	case "tb", "tb-rl", "vertical-rl":
		return VerticalRL
	case "vertical-lr":
		return VerticalLR
	}
	return HorizontalTB
}

// ParseOrientation interprets a glyph orientation, which is "auto" or an
// angle in degrees. Angles are normalized to 0, 90, 180 or 270.
func ParseOrientation(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		return OrientationAuto
	}
	s = strings.TrimSuffix(s, "deg")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Mod(math.Round(v/90)*90, 360)
	if v < 0 {
		v += 360
	}
	return v
}
