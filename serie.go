package obeviz

import (
	"github.com/midbel/svg"
)

type Data interface {
	Render() svg.Element
}

type Serie[T, U ScalerConstraint] struct {
	Color string
	Title string

	X      Scaler[T]
	Y      Scaler[U]
	Points []Point[T, U]
	Series []Serie[T, U]

	Renderer Renderer[T, U]
}

func (s Serie[T, U]) Render() svg.Element {
	return s.Renderer.Render(s)
}

// Point carries a position plus an optional magnitude for renderers keyed on
// two categories (heatmap cells carry their count in Val).
type Point[T, U ScalerConstraint] struct {
	X   T
	Y   U
	Val float64
}

func NumberPoint(x, y float64) Point[float64, float64] {
	return Point[float64, float64]{
		X: x,
		Y: y,
	}
}

func CategoryPoint(x string, y float64) Point[string, float64] {
	return Point[string, float64]{
		X: x,
		Y: y,
	}
}

func CellPoint(x, y string, val float64) Point[string, string] {
	return Point[string, string]{
		X:   x,
		Y:   y,
		Val: val,
	}
}

func (p Point[T, U]) Reverse() Point[U, T] {
	return Point[U, T]{
		X:   p.Y,
		Y:   p.X,
		Val: p.Val,
	}
}
