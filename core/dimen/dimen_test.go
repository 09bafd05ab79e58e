package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/svgtext/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l, err := ParseLength("12px")
	require.NoError(t, err)
	assert.Equal(t, Length{12, PX}, l)
	//
	l, err = ParseLength("0")
	require.NoError(t, err)
	assert.Equal(t, Zero, l)
	//
	l, err = ParseLength("-1.5e1")
	require.NoError(t, err)
	assert.Equal(t, -15.0, l.Value)
	//
	l, err = ParseLength("20%")
	require.NoError(t, err)
	assert.True(t, l.IsPercentage())
	//
	l, err = ParseLength(".5em")
	require.NoError(t, err)
	assert.Equal(t, Length{0.5, EM}, l)
}

func TestParseLengthErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, s := range []string{"", "px", "12xx", "1..2", "abc"} {
		_, err := ParseLength(s)
		assert.Error(t, err, s)
		assert.True(t, core.IsSyntaxError(err), s)
	}
}

func TestResolve(t *testing.T) {
	ctx := Context{FontSize: 20, Reference: 300}
	assert.InDelta(t, 96.0, Length{1, IN}.Resolve(ctx), 1e-9)
	assert.InDelta(t, 4.0/3.0, Length{1, PT}.Resolve(ctx), 1e-9)
	assert.InDelta(t, 30.0, Length{1.5, EM}.Resolve(ctx), 1e-9)
	assert.InDelta(t, 10.0, Length{1, EX}.Resolve(ctx), 1e-9)
	assert.InDelta(t, 150.0, Length{50, Percent}.Resolve(ctx), 1e-9)
	assert.InDelta(t, 7.0, U(7).Resolve(ctx), 1e-9)
}

func TestParseLists(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	list, err := ParseLengthList("10, 20 30px,\t1em")
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.Equal(t, []float64{10, 20, 30, 16}, ResolveAll(list, Context{FontSize: 16}))
	//
	nums, err := ParseNumberList("0 45,90")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 45, 90}, nums)
	//
	empty, err := ParseLengthList("  ")
	assert.NoError(t, err)
	assert.Nil(t, empty)
	//
	_, err = ParseNumberList("1 x")
	assert.Error(t, err)
}
