package textrender

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
)

// VerticalRun is a part of vertical text which is either Latin (all
// characters ≤ U+00FF) or not.
type VerticalRun struct {
	Text  string
	Start int // index of the first character within the text
	Latin bool
}

func isLatin(r rune) bool {
	return r <= 0xFF
}

// SplitVertical splits text into maximal Latin and non-Latin runs.
func SplitVertical(text string) []VerticalRun {
	var runs []VerticalRun
	chars := []rune(text)
	for i := 0; i < len(chars); {
		latin := isLatin(chars[i])
		j := i + 1
		for j < len(chars) && isLatin(chars[j]) == latin {
			j++
		}
		runs = append(runs, VerticalRun{Text: string(chars[i:j]), Start: i, Latin: latin})
		i = j
	}
	return runs
}

// stacked is a part of vertical text drawn with a single transformation.
type stacked struct {
	glyphs *glyphing.GlyphRunSpec
	pos    gg.Point
	center gg.Point // center of rotation
	angle  float64
	width  float64  // extent of decorations
	pivot  gg.Point // position of a single character
	turn   float64  // rotation around pivot, in degrees
}

// transform returns the transformation of an item shifted by dy.
func (it stacked) transform(dy float64) gg.Matrix {
	center := gg.Point{X: it.center.X, Y: it.center.Y + dy}
	m := rotationAround(center, it.angle)
	if it.turn != 0 {
		m = rotationAround(gg.Point{X: it.pivot.X, Y: it.pivot.Y + dy}, it.turn).Multiply(m)
	}
	return m
}

// renderVertical stacks text top to bottom. Latin text is drawn as
// horizontal text rotated by 90°. Other text is drawn upright, or rotated
// according to the run's vertical glyph orientation.
func (r *Renderer) renderVertical(run *style.TextRun, cursor *gg.Point, baseRotation float64,
	pl placement.TextPlacement) error {
	//
	f := r.face(run)
	if run.HasSpacing() || pl.IsVector() || pl.At(0).Rotation != 0 {
		return r.renderVerticalCharacters(run, f, cursor, baseRotation, pl)
	}
	origin := pl.At(0).Origin(*cursor)
	pen := origin
	var items []stacked
	for k, vr := range SplitVertical(run.Text) {
		if k > 0 && pl.IsVector() {
			pen = pl.At(vr.Start).Origin(pen)
		}
		var adv float64
		var err error
		if vr.Latin {
			items, adv, err = r.stackLatin(run, f, vr.Text, pen, items)
		} else {
			items, adv, err = r.stackUpright(run, f, vr.Text, pen, items)
		}
		if err != nil {
			return err
		}
		pen.Y += adv
	}
	shift := anchorShift(run.Anchor, pen.Y-origin.Y)
	bm := rotationAround(origin, baseRotation)
	for _, it := range items {
		pos := gg.Point{X: it.pos.X, Y: it.pos.Y + shift}
		r.emit(run, f, it.glyphs, pos, bm.Multiply(it.transform(shift)), it.width)
	}
	*cursor = bm.TransformPoint(gg.Point{X: pen.X, Y: pen.Y + shift})
	tracer().Debugf("vertical run %q: height %.2f", run.Text, pen.Y-origin.Y)
	return nil
}

// stackLatin adds Latin text, rotated by 90° around the pen. The advance is
// the width of the text plus half the advance of its last glyph.
func (r *Renderer) stackLatin(run *style.TextRun, f face, text string, pen gg.Point,
	items []stacked) ([]stacked, float64, error) {
	//
	gr, err := r.build(run, f, text, false)
	if err != nil || gr.Len() == 0 {
		return items, 0, err
	}
	w := gr.Width()
	items = append(items, stacked{glyphs: gr, pos: pen, center: pen, angle: 90, width: w})
	return items, w + gr.Advances[gr.Len()-1]/2, nil
}

// stackUpright adds non-Latin text. With orientation 0, glyphs advance by
// their heights. With orientation auto, they advance by their widths. Other
// orientations rotate each glyph around the center of its box.
func (r *Renderer) stackUpright(run *style.TextRun, f face, text string, pen gg.Point,
	items []stacked) ([]stacked, float64, error) {
	//
	gr, err := r.build(run, f, text, false)
	if err != nil || gr.Len() == 0 {
		return items, 0, err
	}
	switch o := run.GlyphOrientationVertical; o {
	case 0:
		sideways := gr.Resynthesize(true)
		items = append(items, stacked{glyphs: sideways, pos: pen, center: pen})
		return items, sideways.Width(), nil
	case style.OrientationAuto:
		widths := *gr
		widths.Sideways = true
		items = append(items, stacked{glyphs: &widths, pos: pen, center: pen})
		return items, gr.Width(), nil
	default:
		heights := gr.Resynthesize(true)
		total := 0.0
		for _, c := range gr.Clusters() {
			it, adv := r.stackCluster(run, f, gr, heights, c, gg.Point{X: pen.X, Y: pen.Y + total})
			items = append(items, it)
			total += adv
		}
		return items, total, nil
	}
}

// renderVerticalCharacters stacks a run character by character, applying
// spacing and per-character placement. Text chunks start at characters
// with absolute positions and are anchored individually.
func (r *Renderer) renderVerticalCharacters(run *style.TextRun, f face, cursor *gg.Point,
	baseRotation float64, pl placement.TextPlacement) error {
	//
	var chunk []stacked
	var chunkStart gg.Point
	pen := *cursor
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		shift := anchorShift(run.Anchor, pen.Y-chunkStart.Y)
		for _, it := range chunk {
			pos := gg.Point{X: it.pos.X, Y: it.pos.Y + shift}
			r.emit(run, f, it.glyphs, pos, it.transform(shift), it.width)
		}
		pen.Y += shift
		chunk = chunk[:0]
	}
	for _, vr := range SplitVertical(run.Text) {
		gr, err := r.build(run, f, vr.Text, false)
		if err != nil {
			return err
		}
		var heights *glyphing.GlyphRunSpec
		if !vr.Latin {
			heights = gr.Resynthesize(true)
		}
		clusters := gr.Clusters()
		for k, c := range clusters {
			cp := pl.At(vr.Start + c.CharStart)
			if pl.IsVector() {
				cp = pl.At(vr.Start + logicalIndex(run, gr, c))
			}
			if len(chunk) > 0 && (cp.AbsX() || cp.AbsY()) {
				flush()
			}
			pen = cp.Origin(pen)
			if len(chunk) == 0 {
				chunkStart = pen
			}
			it, adv := r.stackCluster(run, f, gr, heights, c, pen)
			if vr.Latin && k == len(clusters)-1 && c.GlyphEnd > c.GlyphStart {
				adv += gr.Advances[c.GlyphEnd-1] / 2
			}
			adv = spacedAdvance(run, it.glyphs.Chars, adv)
			it.pivot, it.turn = pen, baseRotation
			if cp.Axes.Has(placement.AxisRotate) {
				it.turn = cp.Rotation
			}
			chunk = append(chunk, it)
			pen.Y += adv
		}
	}
	flush()
	*cursor = pen
	tracer().Debugf("vertical run %q set character by character", run.Text)
	return nil
}

// stackCluster places a single cluster of vertical text at pen and returns
// its vertical advance. heights is nil for Latin text.
func (r *Renderer) stackCluster(run *style.TextRun, f face, gr, heights *glyphing.GlyphRunSpec,
	c glyphing.Cluster, pen gg.Point) (stacked, float64) {
	//
	sub := gr.SubRun(c)
	w := sub.Width()
	if heights == nil {
		return stacked{glyphs: sub, pos: pen, center: pen, angle: 90, width: w}, w
	}
	switch o := run.GlyphOrientationVertical; o {
	case 0:
		hs := heights.SubRun(c)
		return stacked{glyphs: hs, pos: pen, center: pen}, hs.Width()
	case style.OrientationAuto:
		widths := *sub
		widths.Sideways = true
		return stacked{glyphs: &widths, pos: pen, center: pen}, w
	default:
		metrics := f.tf.Metrics()
		baseline := (metrics.Ascent - metrics.Descent) / 2 * run.EmSize / 100
		adv := w
		if o == 180 {
			adv = heights.SubRun(c).Width()
		}
		center := gg.Point{X: pen.X, Y: pen.Y + adv/2}
		return stacked{
			glyphs: sub,
			pos:    gg.Point{X: center.X - w/2, Y: center.Y + baseline},
			center: center,
			angle:  o,
			width:  w,
		}, adv
	}
}

// verticalAdvance is the advance of a cluster of vertical text measured
// along the vertical axis. heights holds the cluster's height advances.
func verticalAdvance(run *style.TextRun, sub, heights *glyphing.GlyphRunSpec) float64 {
	if len(sub.Chars) > 0 && isLatin(sub.Chars[0]) {
		return sub.Width()
	}
	switch run.GlyphOrientationVertical {
	case 0, 180:
		return heights.Width()
	}
	return sub.Width()
}
