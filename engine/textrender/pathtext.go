package textrender

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
)

// MinLengthFactor is the smallest factor text is compressed by to fit a
// requested text length. Smaller factors are ignored.
const MinLengthFactor = 0.5

// PathChar is a measured character (or cluster of characters) of text on a
// path.
type PathChar struct {
	Text      string
	Advance   float64  // width, including spacing
	Origin    gg.Point // position as measured on a straight baseline
	Shift     float64  // sum of dy values, perpendicular to the path
	RunIndex  int      // index of the run the character belongs to
	Glyphs    *glyphing.GlyphRunSpec
	Placement placement.CharPlacement
}

// MeasuredPath collects the measured characters of all runs of a path text.
type MeasuredPath struct {
	Chars []PathChar
	Runs  []*style.TextRun
	faces []face
}

// Advance returns the sum of the advances of all characters.
func (mp *MeasuredPath) Advance() float64 {
	w := 0.0
	for _, c := range mp.Chars {
		w += c.Advance
	}
	return w
}

// PathTextBuilder distributes text along a path. Runs are measured with
// AddRun, then drawn by RenderOntoPath.
type PathTextBuilder struct {
	r        *Renderer
	measured MeasuredPath
}

// BeginPath starts text on a path.
func (r *Renderer) BeginPath() *PathTextBuilder {
	return &PathTextBuilder{r: r}
}

// Measured returns the characters measured so far.
func (b *PathTextBuilder) Measured() *MeasuredPath {
	return &b.measured
}

// AddRun measures a run of text on the path. Drawing is deferred until
// RenderOntoPath. originHint is the position of the run on a straight
// baseline; it is recorded with the measured characters.
func (b *PathTextBuilder) AddRun(run *style.TextRun, text string, originHint gg.Point,
	pl placement.TextPlacement) error {
	//
	chars, err := b.r.MeasureRun(run, text, originHint, pl)
	if err != nil {
		return err
	}
	idx := len(b.measured.Runs)
	for i := range chars {
		chars[i].RunIndex = idx
	}
	b.measured.Runs = append(b.measured.Runs, run)
	b.measured.faces = append(b.measured.faces, b.r.face(run))
	b.measured.Chars = append(b.measured.Chars, chars...)
	return nil
}

// MeasureRun measures the characters of text, styled by run, as a list of
// single-cluster glyph runs. Characters of runs in a vertical writing mode
// advance by their vertical extent.
func (r *Renderer) MeasureRun(run *style.TextRun, text string, originHint gg.Point,
	pl placement.TextPlacement) ([]PathChar, error) {
	//
	f := r.face(run)
	gr, err := r.build(run, f, text, false)
	if err != nil {
		return nil, err
	}
	var heights *glyphing.GlyphRunSpec
	if run.WritingMode.IsVertical() {
		heights = gr.Resynthesize(true)
	}
	clusters := gr.Clusters()
	chars := make([]PathChar, 0, len(clusters))
	pen, shift := originHint, 0.0
	for _, c := range clusters {
		cp := pl.At(c.CharStart)
		if pl.IsVector() {
			cp = pl.At(logicalIndex(run, gr, c))
		}
		pen.Y += cp.DY
		shift += cp.DY
		sub := gr.SubRun(c)
		adv := sub.Width()
		if heights != nil {
			adv = verticalAdvance(run, sub, heights.SubRun(c))
		}
		pc := PathChar{
			Text:      string(sub.Chars),
			Advance:   spacedAdvance(run, sub.Chars, adv),
			Origin:    pen,
			Shift:     shift,
			Glyphs:    sub,
			Placement: cp,
		}
		chars = append(chars, pc)
		pen.X += pc.Advance
	}
	return chars, nil
}

// RenderAt draws a measured character. m maps the character's box, with
// its baseline center at (0,0), to user space.
func (r *Renderer) RenderAt(c PathChar, run *style.TextRun, m gg.Matrix) {
	r.renderAt(c, run, r.face(run), m)
}

func (r *Renderer) renderAt(c PathChar, run *style.TextRun, f face, m gg.Matrix) {
	origin := gg.Point{X: -c.Advance / 2, Y: c.Shift}
	if c.Placement.Rotation != 0 {
		m = m.Multiply(gg.Rotate(c.Placement.Rotation * math.Pi / 180))
	}
	r.emit(run, f, c.Glyphs, origin, m, c.Advance)
}

// PathOptions are the attributes of a textPath.
type PathOptions struct {
	StartOffset     dimen.Length // of the textPath; percentages refer to the path length
	TextStartOffset dimen.Length // of the text, used if StartOffset is 0
	TextLength      float64      // requested length of the text, 0 if unset
	Anchor          style.Anchor
	FontSize        float64 // for em-relative offsets
}

// PathResult reports the outcome of distributing text along a path.
type PathResult struct {
	Progress float64 // final position, as a fraction of the path length
	Drawn    int     // number of characters drawn
	Length   float64 // length of the path
}

// RenderOntoPath distributes the measured characters along path and draws
// them. Each character is centered horizontally on the path with its
// baseline, rotated to the direction of the path. Characters which do not
// fit onto the path are not drawn.
func (b *PathTextBuilder) RenderOntoPath(path *gg.Path, opts PathOptions) PathResult {
	curve := newArcLength(path, b.r.flatness())
	if curve.length == 0 {
		tracer().Debugf("text path has zero length")
		return PathResult{}
	}
	ctx := dimen.Context{FontSize: opts.FontSize, Reference: curve.length}
	offset := opts.StartOffset.Resolve(ctx)
	if offset == 0 {
		offset = opts.TextStartOffset.Resolve(ctx)
	}
	factor := 1.0
	if total := b.measured.Advance(); opts.TextLength > 0 && total > 0 {
		if f := opts.TextLength / total; f >= MinLengthFactor {
			factor = f
		}
	}
	frac := offset / curve.length
	result := PathResult{Length: curve.length}
	if math.IsNaN(frac) || math.IsInf(frac, 0) {
		tracer().Infof("text path start offset %g is not finite", offset)
		return result
	}
	if frac < 0 || opts.Anchor == style.AnchorEnd {
		result.Progress, result.Drawn = b.layoutBackwards(curve, frac, factor)
	} else {
		if opts.Anchor == style.AnchorMiddle {
			frac -= b.measured.Advance() * factor / 2 / curve.length
		}
		result.Progress, result.Drawn = b.layoutForwards(curve, frac, factor)
	}
	tracer().Debugf("text on path: %d of %d characters drawn", result.Drawn, len(b.measured.Chars))
	return result
}

func (b *PathTextBuilder) layoutForwards(curve *arcLength, progress, factor float64) (float64, int) {
	drawn := 0
	var prev gg.Point
	sampled := false
	for _, c := range b.measured.Chars {
		half := c.Advance * factor / 2 / curve.length
		progress += half
		if progress > 1 {
			break
		}
		if progress >= 0 {
			pt, angle := curve.sample(progress)
			if sampled && pt == prev {
				break
			}
			prev, sampled = pt, true
			b.place(c, pt, angle)
			drawn++
		}
		progress += half
	}
	return progress, drawn
}

// layoutBackwards places characters back to front, ending at 1+frac,
// normalized to [0,1] by subtracting whole units.
func (b *PathTextBuilder) layoutBackwards(curve *arcLength, frac, factor float64) (float64, int) {
	progress := normalizeProgress(1 + frac)
	drawn := 0
	var prev gg.Point
	sampled := false
	for i := len(b.measured.Chars) - 1; i >= 0; i-- {
		c := b.measured.Chars[i]
		half := c.Advance * factor / 2 / curve.length
		progress -= half
		if progress < 0 {
			break
		}
		pt, angle := curve.sample(progress)
		if sampled && pt == prev {
			break
		}
		prev, sampled = pt, true
		b.place(c, pt, angle)
		drawn++
		progress -= half
	}
	return progress, drawn
}

// normalizeProgress maps p to [0,1] by adding or subtracting whole units.
// Values > 1 map to (0,1], negative values to [0,1).
func normalizeProgress(p float64) float64 {
	if p > 1 {
		return p - (math.Ceil(p) - 1)
	}
	if p < 0 {
		return p - math.Floor(p)
	}
	return p
}

func (b *PathTextBuilder) place(c PathChar, pt gg.Point, angle float64) {
	m := gg.Translate(pt.X, pt.Y).Multiply(gg.Rotate(angle))
	b.r.renderAt(c, b.measured.Runs[c.RunIndex], b.measured.faces[c.RunIndex], m)
}

// --- Arc length ------------------------------------------------------------

type segment struct {
	a, b  gg.Point
	start float64 // arc length at a
	len   float64
}

// arcLength parameterizes a path by arc length. Subpaths continue each
// other; gaps between them do not count.
type arcLength struct {
	segments []segment
	length   float64
}

func newArcLength(path *gg.Path, tolerance float64) *arcLength {
	al := &arcLength{}
	if path == nil {
		return al
	}
	for _, sub := range subpaths(path) {
		var last gg.Point
		first := true
		sub.FlattenCallback(tolerance, func(pt gg.Point) {
			if !first {
				if l := pt.Distance(last); l > 0 {
					al.segments = append(al.segments, segment{a: last, b: pt, start: al.length, len: l})
					al.length += l
				}
			}
			last, first = pt, false
		})
	}
	return al
}

// sample returns the point at a fraction of the path length and the angle
// of the path's direction there.
func (al *arcLength) sample(progress float64) (gg.Point, float64) {
	s := progress * al.length
	for i, sg := range al.segments {
		if s <= sg.start+sg.len || i == len(al.segments)-1 {
			t := math.Max(0, math.Min(1, (s-sg.start)/sg.len))
			return sg.a.Lerp(sg.b, t), math.Atan2(sg.b.Y-sg.a.Y, sg.b.X-sg.a.X)
		}
	}
	return gg.Point{}, 0
}
