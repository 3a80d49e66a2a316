package obeviz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNthRoot(t *testing.T) {
	v, err := NthRoot(16, 4)
	require.NoError(t, err)
	require.InDelta(t, 2, v, 1e-9)

	v, err = NthRoot(-8, 3)
	require.NoError(t, err)
	require.InDelta(t, -2, v, 1e-9)

	_, err = NthRoot(-4, 2)
	require.ErrorIs(t, err, ErrDomain)
}

func TestScaleRadius(t *testing.T) {
	var (
		min, _ = NthRoot(10, 4)
		max, _ = NthRoot(300000, 4)
	)

	// zero counts clamp to the domain floor
	r, err := ScaleRadius(0, min, max, 4)
	require.NoError(t, err)
	require.Equal(t, min, r)

	r, err = ScaleRadius(10, min, max, 4)
	require.NoError(t, err)
	root, _ := NthRoot(1000, 4)
	require.InDelta(t, root+max+min, r, 1e-9)

	_, err = ScaleRadius(-5, min, max, 4)
	require.ErrorIs(t, err, ErrDomain)
}

func TestScaleRadiusMonotonic(t *testing.T) {
	var (
		min, _ = NthRoot(10, 4)
		max, _ = NthRoot(300000, 4)
		prev   float64
	)
	for i, v := range []float64{1, 10, 100, 1000, 40000, 300000} {
		r, err := ScaleRadius(v, min, max, 4)
		require.NoError(t, err)
		if i > 0 {
			require.Greater(t, r, prev)
		}
		prev = r
	}
}

func TestScaleRadii(t *testing.T) {
	var (
		min, _ = NthRoot(10, 4)
		max, _ = NthRoot(300000, 4)
	)
	radii, err := ScaleRadii([]float64{0, 10, 100}, min, max, 4)
	require.NoError(t, err)
	require.Len(t, radii, 3)
	require.Equal(t, min, radii[0])
	require.Less(t, radii[1], radii[2])
}

func TestRadiusTicks(t *testing.T) {
	ticks := RadiusTicks(4, 40000, 7)
	require.Equal(t, []int{0, 30, 493, 2500, 7901, 19290, 40000}, ticks)

	require.Nil(t, RadiusTicks(4, 40000, 0))
	require.Equal(t, []int{40000}, RadiusTicks(4, 40000, 1))
}

func TestRoundToNearest(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{8, 8},
		{15, 20},
		{99, 100},
		{347, 300},
		{2500, 2500},
		{7901, 7900},
		{15234, 15000},
		{19290, 19000},
		{40000, 40000},
	}
	for _, c := range cases {
		require.Equal(t, c.want, RoundToNearest(c.in), "value %d", c.in)
	}
}
