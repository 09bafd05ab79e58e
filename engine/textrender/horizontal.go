package textrender

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/engine/glyphing"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
)

// needsSplit is true if a run cannot be drawn as a single glyph run.
func needsSplit(run *style.TextRun, pl placement.TextPlacement) bool {
	return run.HasSpacing() || pl.IsVector() || run.GlyphOrientationHorizontal != 0 ||
		pl.At(0).Rotation != 0
}

// anchorShift is the shift of text of a given width for an anchor.
func anchorShift(anchor style.Anchor, width float64) float64 {
	switch anchor {
	case style.AnchorMiddle:
		return -width / 2
	case style.AnchorEnd:
		return -width
	}
	return 0
}

func (r *Renderer) renderHorizontal(run *style.TextRun, cursor *gg.Point, baseRotation float64,
	pl placement.TextPlacement) error {
	//
	f := r.face(run)
	if !needsSplit(run, pl) {
		gr, err := r.build(run, f, run.Text, false)
		if err != nil {
			return err
		}
		origin := pl.At(0).Origin(*cursor)
		w := gr.Width()
		shift := anchorShift(run.Anchor, w)
		m := rotationAround(origin, baseRotation)
		r.emit(run, f, gr, gg.Point{X: origin.X + shift, Y: origin.Y}, m, w)
		*cursor = m.TransformPoint(gg.Point{X: origin.X + w + shift, Y: origin.Y})
		tracer().Debugf("horizontal run %q: width %.2f", run.Text, w)
		return nil
	}
	return r.renderCharacters(run, f, cursor, baseRotation, pl)
}

// positioned is a cluster of characters with its own position.
type positioned struct {
	glyphs   *glyphing.GlyphRunSpec
	pos      gg.Point
	rotation float64
	advance  float64
}

// renderCharacters draws a run character by character. Text chunks start at
// characters with absolute positions and are anchored individually.
func (r *Renderer) renderCharacters(run *style.TextRun, f face, cursor *gg.Point, baseRotation float64,
	pl placement.TextPlacement) error {
	//
	gr, err := r.build(run, f, run.Text, false)
	if err != nil {
		return err
	}
	orientation := run.GlyphOrientationHorizontal
	var sideways *glyphing.GlyphRunSpec
	if orientation == 90 || orientation == 270 {
		sideways = gr.Resynthesize(true)
	}
	var chunk []positioned
	pen := *cursor
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		w := pen.X - chunk[0].pos.X
		shift := anchorShift(run.Anchor, w)
		for _, c := range chunk {
			pos := gg.Point{X: c.pos.X + shift, Y: c.pos.Y}
			r.emit(run, f, c.glyphs, pos, rotationAround(pos, c.rotation), c.advance)
		}
		pen.X += shift
		chunk = chunk[:0]
	}
	for _, c := range gr.Clusters() {
		cp := pl.At(c.CharStart)
		if pl.IsVector() {
			cp = pl.At(logicalIndex(run, gr, c))
		}
		if len(chunk) > 0 && (cp.AbsX() || cp.AbsY()) {
			flush()
		}
		pen = cp.Origin(pen)
		sub := gr.SubRun(c)
		adv := sub.Width()
		if sideways != nil {
			adv = sideways.SubRun(c).Width()
		}
		adv = spacedAdvance(run, sub.Chars, adv)
		rotation := baseRotation
		if cp.Axes.Has(placement.AxisRotate) {
			rotation = cp.Rotation
		}
		chunk = append(chunk, positioned{
			glyphs:   sub,
			pos:      pen,
			rotation: rotation + orientation,
			advance:  adv,
		})
		pen.X += adv
	}
	flush()
	*cursor = pen
	return nil
}
