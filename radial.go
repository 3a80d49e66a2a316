package obeviz

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is reported when a value falls outside the domain of the radial
// transform, typically a negative count under an even root.
var ErrDomain = errors.New("value out of domain")

func NthRoot(value float64, n int) (float64, error) {
	if value < 0 {
		if n%2 == 0 {
			return 0, fmt.Errorf("%w: even root of negative value %g", ErrDomain, value)
		}
		v, err := NthRoot(-value, n)
		return -v, err
	}
	return math.Pow(value, 1/float64(n)), nil
}

// ScaleRadius maps a raw count onto a donut radius. The transform is the
// nth root of value*100 shifted by the sum of the domain bounds; the odd
// additive offset is intentional and charts depend on its exact shape. A
// zero count clamps to the transformed domain floor.
func ScaleRadius(value, min, max float64, n int) (float64, error) {
	if value == 0 {
		return min, nil
	}
	root, err := NthRoot(value*100, n)
	if err != nil {
		return 0, err
	}
	r := root + max + min
	if math.IsInf(r, -1) || math.IsNaN(r) {
		return min, nil
	}
	return r, nil
}

func ScaleRadii(values []float64, min, max float64, n int) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		r, err := ScaleRadius(v, min, max, n)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// RadiusTicks spreads count gridlines over [0, limit] along an nth power
// curve, so the fixed circles of the donut chart bunch up where the radial
// transform stretches values apart.
func RadiusTicks(n, limit, count int) []int {
	if count < 2 {
		if count == 1 {
			return []int{limit}
		}
		return nil
	}
	ticks := make([]int, count)
	for i := 0; i < count; i++ {
		v := float64(i) / float64(count-1)
		ticks[i] = int(math.Pow(v, float64(n)) * float64(limit))
	}
	return ticks
}

// RoundToNearest snaps a tick value to a neighbour that reads well as a
// label: single digits stay, 2-3 digit values round at their own magnitude,
// anything larger rounds one magnitude below. Display only.
func RoundToNearest(value int) int {
	if value < 10 {
		return value
	}
	exp := int(math.Log10(float64(value)))
	if value >= 1000 {
		exp--
	}
	unit := math.Pow(10, float64(exp))
	return int(math.Round(float64(value)/unit) * unit)
}
