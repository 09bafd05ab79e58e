package placement

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
)

// Axes is a set of positioning axes.
type Axes uint8

// Positioning axes.
const (
	AxisX Axes = 1 << iota
	AxisY
	AxisDX
	AxisDY
	AxisRotate
)

// Has is true if all axes of b are in a.
func (a Axes) Has(b Axes) bool {
	return a&b == b
}

// CharPlacement is the placement of a single character. Axes tells which
// values have been supplied explicitly; the others are fallback values.
type CharPlacement struct {
	X, Y     float64 // absolute position
	DX, DY   float64 // relative shift
	Rotation float64 // degrees
	Axes     Axes
}

// AbsX is true if the character has an explicit absolute x position.
func (cp CharPlacement) AbsX() bool {
	return cp.Axes.Has(AxisX)
}

// AbsY is true if the character has an explicit absolute y position.
func (cp CharPlacement) AbsY() bool {
	return cp.Axes.Has(AxisY)
}

// Origin returns the position of a character placed at the running cursor:
// explicit absolute values replace cursor coordinates, shifts are added.
func (cp CharPlacement) Origin(cursor gg.Point) gg.Point {
	if cp.AbsX() {
		cursor.X = cp.X
	}
	if cp.AbsY() {
		cursor.Y = cp.Y
	}
	return gg.Point{X: cursor.X + cp.DX, Y: cursor.Y + cp.DY}
}

func (cp CharPlacement) String() string {
	return fmt.Sprintf("(%g,%g)+(%g,%g)@%g°", cp.X, cp.Y, cp.DX, cp.DY, cp.Rotation)
}

// TextPlacement is the placement of a run of characters. A scalar placement
// has no character placements and positions the run as a whole.
type TextPlacement struct {
	Scalar     CharPlacement
	Chars      []CharPlacement // nil for scalar placements
	RotateOnly bool            // only rotations differ between characters
	tail       *CharPlacement  // placement of characters beyond Chars
}

// IsVector is true for per-character placements.
func (tp TextPlacement) IsVector() bool {
	return tp.Chars != nil
}

// Len returns the number of character placements, 1 for scalar placements.
func (tp TextPlacement) Len() int {
	if tp.Chars == nil {
		return 1
	}
	return len(tp.Chars)
}

// At returns the placement of character i. Characters beyond the vector
// carry forward the last entry. For scalar placements, characters after the
// first keep the rotation only.
func (tp TextPlacement) At(i int) CharPlacement {
	if tp.Chars == nil {
		if i == 0 {
			return tp.Scalar
		}
		return CharPlacement{Rotation: tp.Scalar.Rotation, Axes: tp.Scalar.Axes & AxisRotate}
	}
	if i >= len(tp.Chars) {
		if tp.tail != nil {
			return *tp.tail
		}
		i = len(tp.Chars) - 1
	}
	return tp.Chars[i]
}

// Attributes holds positioning lists in user units.
type Attributes struct {
	X, Y, DX, DY []float64
	Rotate       []float64 // degrees
}

// Resolve computes the placement of a run of text from positioning lists.
// cursor is the running text position, which is used for absent x and y
// values. For text on a path, x and dx are ignored, as the position along
// the path is determined by the path layout.
func Resolve(attrs Attributes, cursor gg.Point, isPath bool) TextPlacement {
	if isPath {
		attrs.X, attrs.DX = nil, nil
	}
	lists := [...][]float64{attrs.X, attrs.Y, attrs.DX, attrs.DY, attrs.Rotate}
	n, vector := 0, false
	for _, l := range lists {
		n = max(n, len(l))
		vector = vector || len(l) > 1
	}
	if !vector {
		return TextPlacement{Scalar: charAt(attrs, 0, cursor)}
	}
	tp := TextPlacement{
		Chars: make([]CharPlacement, n),
		RotateOnly: len(attrs.Rotate) > 1 && len(attrs.X) <= 1 && len(attrs.Y) <= 1 &&
			len(attrs.DX) <= 1 && len(attrs.DY) <= 1,
	}
	for i := range tp.Chars {
		tp.Chars[i] = charAt(attrs, i, cursor)
	}
	tail := charAt(attrs, n, cursor)
	tp.tail = &tail
	tracer().Debugf("vector placement for %d characters, rotate-only=%v", n, tp.RotateOnly)
	return tp
}

func charAt(attrs Attributes, i int, cursor gg.Point) CharPlacement {
	var cp CharPlacement
	var ok bool
	if cp.X, ok = entry(attrs.X, i, cursor.X); ok {
		cp.Axes |= AxisX
	}
	if cp.Y, ok = entry(attrs.Y, i, cursor.Y); ok {
		cp.Axes |= AxisY
	}
	if cp.DX, ok = entry(attrs.DX, i, 0); ok {
		cp.Axes |= AxisDX
	}
	if cp.DY, ok = entry(attrs.DY, i, 0); ok {
		cp.Axes |= AxisDY
	}
	if cp.Rotation, ok = entry(attrs.Rotate, i, 0); ok {
		cp.Axes |= AxisRotate
	}
	cp.Rotation = NormalizeRotation(cp.Rotation)
	return cp
}

// entry returns list[i] or, for i beyond the list, its last finite entry.
// Non-finite entries and empty lists yield fallback.
func entry(list []float64, i int, fallback float64) (float64, bool) {
	if i < len(list) {
		if v := list[i]; isFinite(v) {
			return v, true
		}
		return fallback, false
	}
	for j := len(list) - 1; j >= 0; j-- {
		if isFinite(list[j]) {
			return list[j], true
		}
	}
	return fallback, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NormalizeRotation maps NaN and infinite rotations to 0.
func NormalizeRotation(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	return deg
}

// --- Lengths ---------------------------------------------------------------

// LengthAttributes holds positioning lists as given in a document, with units.
type LengthAttributes struct {
	X, Y, DX, DY []dimen.Length
	Rotate       []float64
}

// ParseAttributes parses the string values of the positioning attributes.
// Empty strings denote absent attributes.
func ParseAttributes(x, y, dx, dy, rotate string) (LengthAttributes, error) {
	var la LengthAttributes
	var err error
	for _, a := range []struct {
		name, value string
		list        *[]dimen.Length
	}{{"x", x, &la.X}, {"y", y, &la.Y}, {"dx", dx, &la.DX}, {"dy", dy, &la.DY}} {
		if *a.list, err = dimen.ParseLengthList(a.value); err != nil {
			return la, core.WrapError(err, core.ESYNTAX, "attribute %s", a.name)
		}
	}
	if la.Rotate, err = dimen.ParseNumberList(rotate); err != nil {
		return la, core.WrapError(err, core.ESYNTAX, "attribute rotate")
	}
	return la, nil
}

// IsEmpty is true if no positioning attribute is present.
func (la LengthAttributes) IsEmpty() bool {
	return len(la.X)+len(la.Y)+len(la.DX)+len(la.DY)+len(la.Rotate) == 0
}

// Resolve converts the lists to user units. Percentages of horizontal values
// refer to width, vertical ones to height.
func (la LengthAttributes) Resolve(ctx dimen.Context, width, height float64) Attributes {
	h, v := ctx, ctx
	h.Reference, v.Reference = width, height
	return Attributes{
		X:      dimen.ResolveAll(la.X, h),
		Y:      dimen.ResolveAll(la.Y, v),
		DX:     dimen.ResolveAll(la.DX, h),
		DY:     dimen.ResolveAll(la.DY, v),
		Rotate: la.Rotate,
	}
}
