package glyphing

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// BidiLevel returns the embedding level of text with direction dir:
// 1 for right-to-left, 0 otherwise.
func (dir Direction) BidiLevel() uint8 {
	if dir == RightToLeft {
		return 1
	}
	return 0
}

// Offset is the displacement of a glyph from its nominal position.
type Offset struct {
	DX, DY float64
}

// maxGlyphs is the size limit of cluster map entries.
const maxGlyphs = math.MaxUint16 + 1

// GlyphRunSpec is a run of glyphs, ready to be drawn. Advances and offsets
// are in user units, i.e. scaled to the run's em size.
//
// A GlyphRunSpec is immutable after construction.
type GlyphRunSpec struct {
	Typeface   font.Typeface
	Chars      []rune
	Glyphs     []font.GlyphIndex
	Advances   []float64
	Offsets    []Offset // nil if all offsets are zero
	ClusterMap []uint16 // per character: index of the first glyph of its cluster
	BidiLevel  uint8
	Sideways   bool
	EmSize     float64
	Language   language.Tag
}

// Len returns the number of glyphs.
func (run *GlyphRunSpec) Len() int {
	return len(run.Glyphs)
}

// Width returns the sum of the glyph advances.
func (run *GlyphRunSpec) Width() float64 {
	w := 0.0
	for _, a := range run.Advances {
		w += a
	}
	return w
}

// Offset returns the offset of glyph i.
func (run *GlyphRunSpec) Offset(i int) Offset {
	if run.Offsets == nil || i >= len(run.Offsets) {
		return Offset{}
	}
	return run.Offsets[i]
}

// setOffset allocates offsets on the first non-zero value.
func (run *GlyphRunSpec) setOffset(i int, dx, dy float64) {
	if run.Offsets == nil {
		if dx == 0 && dy == 0 {
			return
		}
		run.Offsets = make([]Offset, len(run.Glyphs), cap(run.Glyphs))
	}
	for len(run.Offsets) <= i {
		run.Offsets = append(run.Offsets, Offset{})
	}
	run.Offsets[i] = Offset{dx, dy}
}

func (run *GlyphRunSpec) addGlyph(gid font.GlyphIndex, advance float64) (int, error) {
	g := len(run.Glyphs)
	if g >= maxGlyphs {
		return g, core.Error(core.ESYNTAX, "glyph count exceeds cluster map size of %d", maxGlyphs)
	}
	run.Glyphs = append(run.Glyphs, gid)
	run.Advances = append(run.Advances, advance)
	if run.Offsets != nil {
		run.Offsets = append(run.Offsets, Offset{})
	}
	return g, nil
}

func (run *GlyphRunSpec) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, g := range run.Glyphs {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d:%.2f", g, run.Advances[i])
	}
	b.WriteString("]")
	return b.String()
}

// --- Clusters --------------------------------------------------------------

// Cluster is a group of characters represented by a group of glyphs.
// Ranges are half-open.
type Cluster struct {
	CharStart, CharEnd   int
	GlyphStart, GlyphEnd int
}

// Clusters lists the clusters of a run in character order.
func (run *GlyphRunSpec) Clusters() []Cluster {
	var clusters []Cluster
	for i := 0; i < len(run.ClusterMap); {
		c := Cluster{CharStart: i, GlyphStart: int(run.ClusterMap[i])}
		for i < len(run.ClusterMap) && int(run.ClusterMap[i]) == c.GlyphStart {
			i++
		}
		c.CharEnd = i
		if i < len(run.ClusterMap) {
			c.GlyphEnd = int(run.ClusterMap[i])
		} else {
			c.GlyphEnd = len(run.Glyphs)
		}
		clusters = append(clusters, c)
	}
	return clusters
}

// SubRun extracts the glyphs of a cluster as a run of its own.
func (run *GlyphRunSpec) SubRun(c Cluster) *GlyphRunSpec {
	sub := &GlyphRunSpec{
		Typeface:   run.Typeface,
		Chars:      run.Chars[c.CharStart:c.CharEnd],
		Glyphs:     run.Glyphs[c.GlyphStart:c.GlyphEnd],
		Advances:   run.Advances[c.GlyphStart:c.GlyphEnd],
		ClusterMap: make([]uint16, c.CharEnd-c.CharStart),
		BidiLevel:  run.BidiLevel,
		Sideways:   run.Sideways,
		EmSize:     run.EmSize,
		Language:   run.Language,
	}
	if run.Offsets != nil {
		sub.Offsets = run.Offsets[c.GlyphStart:c.GlyphEnd]
	}
	return sub
}

// Resynthesize creates a copy of a run with the advances of another axis:
// the typeface's height advances if sideways is set, widths otherwise.
func (run *GlyphRunSpec) Resynthesize(sideways bool) *GlyphRunSpec {
	re := *run
	re.Sideways = sideways
	re.Advances = make([]float64, len(run.Glyphs))
	scale := run.EmSize / 100
	for i, g := range run.Glyphs {
		re.Advances[i] = run.Typeface.Advance(g, sideways) * scale
	}
	return &re
}

// --- Building runs ---------------------------------------------------------

type buildConfig struct {
	kerning   bool
	bidiLevel uint8
	lang      language.Tag
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithKerning adds the typeface's pair kerning to the advance of the left
// glyph of each pair.
func WithKerning(on bool) BuildOption {
	return func(c *buildConfig) {
		c.kerning = on
	}
}

// WithBidiLevel sets the bidi embedding level of the run.
func WithBidiLevel(level uint8) BuildOption {
	return func(c *buildConfig) {
		c.bidiLevel = level
	}
}

// WithLanguage records the language of the text.
func WithLanguage(lang language.Tag) BuildOption {
	return func(c *buildConfig) {
		c.lang = lang
	}
}

// Build creates a run of glyphs for text. Characters are mapped to glyphs
// 1:1, characters missing from the typeface map to font.NotDef. Typefaces
// implementing font.ClusterMapper may map several characters to one glyph.
// For other typefaces, the characters of a grapheme cluster (e.g. a base
// letter with combining marks) form a single cluster of glyphs.
// If sideways is set, glyphs advance by their height.
func Build(tf font.Typeface, text string, emSize float64, sideways bool, opts ...BuildOption) (*GlyphRunSpec, error) {
	run, cfg, err := newRun(tf, text, emSize, sideways, opts)
	if err != nil {
		return nil, err
	}
	if mapper, ok := tf.(font.ClusterMapper); ok {
		err = run.mapLigatures(mapper)
	} else {
		err = run.mapGraphemes(text)
	}
	if err != nil {
		return nil, err
	}
	if cfg.kerning {
		run.applyKerning()
	}
	tracer().Debugf("glyph run for %q: %s", text, run)
	return run, nil
}

func (run *GlyphRunSpec) mapLigatures(mapper font.ClusterMapper) error {
	for i := 0; i < len(run.Chars); {
		gid, n, _ := mapper.MapCluster(run.Chars[i:])
		n = max(n, 1)
		if err := run.mapCluster(i, n, gid, -1); err != nil {
			return err
		}
		i += n
	}
	return nil
}

// mapGraphemes maps each character to its glyph and groups the glyphs of a
// grapheme cluster.
func (run *GlyphRunSpec) mapGraphemes(text string) error {
	sizes := graphemes(text)
	i := 0
	for _, n := range sizes {
		n = min(n, len(run.Chars)-i)
		first := len(run.Glyphs)
		for k := i; k < i+n; k++ {
			gid, _ := run.Typeface.GlyphIndex(run.Chars[k])
			if err := run.mapCluster(k, 1, gid, -1); err != nil {
				return err
			}
			run.ClusterMap[k] = uint16(first)
		}
		i += n
	}
	for ; i < len(run.Chars); i++ {
		gid, _ := run.Typeface.GlyphIndex(run.Chars[i])
		if err := run.mapCluster(i, 1, gid, -1); err != nil {
			return err
		}
	}
	return nil
}

var graphemeClasses sync.Once

// graphemes returns the number of characters of each grapheme cluster of
// text.
func graphemes(text string) []int {
	if text == "" {
		return nil
	}
	graphemeClasses.Do(grapheme.SetupGraphemeClasses)
	seg := segment.NewSegmenter(grapheme.NewBreaker(1))
	seg.Init(strings.NewReader(text))
	var sizes []int
	for seg.Next() {
		sizes = append(sizes, utf8.RuneCount(seg.Bytes()))
	}
	return sizes
}

func newRun(tf font.Typeface, text string, emSize float64, sideways bool,
	opts []BuildOption) (*GlyphRunSpec, *buildConfig, error) {
	//
	if tf == nil {
		return nil, nil, core.Error(core.EINVALID, "glyph run needs a typeface")
	}
	if math.IsNaN(emSize) || math.IsInf(emSize, 0) || emSize < 0 {
		return nil, nil, core.Error(core.EINVALID, "invalid em size %g", emSize)
	}
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	chars := []rune(text)
	run := &GlyphRunSpec{
		Typeface:   tf,
		Chars:      chars,
		Glyphs:     make([]font.GlyphIndex, 0, len(chars)),
		Advances:   make([]float64, 0, len(chars)),
		ClusterMap: make([]uint16, len(chars)),
		BidiLevel:  cfg.bidiLevel,
		Sideways:   sideways,
		EmSize:     emSize,
		Language:   cfg.lang,
	}
	return run, cfg, nil
}

// mapCluster appends a glyph for n characters starting at char. A negative
// advance selects the typeface's advance.
func (run *GlyphRunSpec) mapCluster(char, n int, gid font.GlyphIndex, advance float64) error {
	if advance < 0 {
		advance = run.Typeface.Advance(gid, run.Sideways) * run.EmSize / 100
	}
	g, err := run.addGlyph(gid, advance)
	if err != nil {
		return err
	}
	for k := char; k < char+n; k++ {
		run.ClusterMap[k] = uint16(g)
	}
	return nil
}

func (run *GlyphRunSpec) applyKerning() {
	if run.Sideways {
		return
	}
	scale := run.EmSize / 100
	for i := 0; i+1 < len(run.Glyphs); i++ {
		run.Advances[i] += run.Typeface.Kerning(run.Glyphs[i], run.Glyphs[i+1]) * scale
	}
}
