package placement

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarPlacement(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	tp := Resolve(Attributes{X: []float64{10}, Rotate: []float64{30}}, gg.Point{X: 1, Y: 2}, false)
	assert.False(t, tp.IsVector())
	first := tp.At(0)
	assert.True(t, first.AbsX())
	assert.False(t, first.AbsY())
	assert.Equal(t, gg.Point{X: 10, Y: 2}, first.Origin(gg.Point{X: 1, Y: 2}))
	second := tp.At(1)
	assert.False(t, second.AbsX())
	assert.Equal(t, 30.0, second.Rotation)
}

func TestPlacementFallback(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	attrs := Attributes{X: []float64{10}, Y: []float64{0, 5, 10, 15, 20}}
	tp := Resolve(attrs, gg.Point{}, false)
	require.True(t, tp.IsVector())
	require.Equal(t, 5, tp.Len())
	for i := 0; i < 5; i++ {
		cp := tp.At(i)
		assert.Equal(t, 10.0, cp.X)
		assert.Equal(t, float64(i*5), cp.Y)
		assert.True(t, cp.AbsX() && cp.AbsY())
		assert.False(t, cp.Axes.Has(AxisDX))
	}
	assert.False(t, tp.RotateOnly)
}

func TestRotationCarryForward(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	tp := Resolve(Attributes{Rotate: []float64{0, 45}}, gg.Point{X: 7}, false)
	require.True(t, tp.IsVector())
	assert.True(t, tp.RotateOnly)
	var rot []float64
	for i := 0; i < 4; i++ {
		rot = append(rot, tp.At(i).Rotation)
	}
	assert.Equal(t, []float64{0, 45, 45, 45}, rot)
	assert.False(t, tp.At(3).AbsX())
	assert.Equal(t, 7.0, tp.At(3).X, "absent x follows the cursor")
}

func TestNonFiniteRotation(t *testing.T) {
	tp := Resolve(Attributes{Rotate: []float64{math.NaN(), math.Inf(1), 10}}, gg.Point{}, false)
	assert.Equal(t, 0.0, tp.At(0).Rotation)
	assert.Equal(t, 0.0, tp.At(1).Rotation)
	assert.Equal(t, 10.0, tp.At(2).Rotation)
}

func TestNonFiniteLastEntry(t *testing.T) {
	attrs := Attributes{X: []float64{5, 8, math.NaN()}, Rotate: []float64{10, math.Inf(-1)}}
	tp := Resolve(attrs, gg.Point{X: 1}, false)
	require.Equal(t, 3, tp.Len())
	assert.False(t, tp.At(2).AbsX(), "explicit NaN falls back to the cursor")
	assert.Equal(t, 1.0, tp.At(2).X)
	assert.Equal(t, 0.0, tp.At(1).Rotation)
	for _, i := range []int{3, 10} {
		cp := tp.At(i)
		assert.True(t, cp.AbsX())
		assert.Equal(t, 8.0, cp.X, "last finite x carries forward")
		assert.Equal(t, 10.0, cp.Rotation, "last finite rotation carries forward")
	}
	assert.Equal(t, 10.0, tp.At(2).Rotation)
}

func TestPathPlacementIgnoresX(t *testing.T) {
	attrs := Attributes{X: []float64{1, 2, 3}, DX: []float64{4, 5}, DY: []float64{1}}
	tp := Resolve(attrs, gg.Point{}, true)
	assert.False(t, tp.IsVector())
	assert.False(t, tp.At(0).AbsX())
	assert.Equal(t, 0.0, tp.At(0).DX)
	assert.Equal(t, 1.0, tp.At(0).DY)
}

func TestLengthAttributes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	la, err := ParseAttributes("10 50%", "1em", "", "2mm", "0, 90")
	require.NoError(t, err)
	assert.False(t, la.IsEmpty())
	attrs := la.Resolve(dimen.Context{FontSize: 16}, 200, 100)
	assert.Equal(t, []float64{10, 100}, attrs.X)
	assert.Equal(t, []float64{16}, attrs.Y)
	assert.Nil(t, attrs.DX)
	assert.InDelta(t, 2*dimen.Q, attrs.DY[0], 1e-9)
	assert.Equal(t, []float64{0, 90}, attrs.Rotate)
	//
	_, err = ParseAttributes("10 zz", "", "", "", "")
	assert.Equal(t, core.ESYNTAX, core.Code(err))
	_, err = ParseAttributes("", "", "", "", "x")
	assert.Equal(t, core.ESYNTAX, core.Code(err))
}
