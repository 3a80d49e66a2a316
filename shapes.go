package obeviz

import (
	"github.com/midbel/svg"
)

var DefaultSize float64 = 4

// PointFunc draws a marker at a scaled position; line renderers call it for
// every plotted point when set.
type PointFunc func(svg.Pos) svg.Element

func GetCircle(pos svg.Pos) svg.Element {
	var el svg.Circle
	el.Pos = pos
	el.Fill = svg.NewFill(currentColour)
	el.Radius = DefaultSize / 2
	return el.AsElement()
}
