package obeviz

import (
	"math"

	"github.com/midbel/svg"
)

// LogColorScale maps a value onto a palette along a logarithmic ramp, the
// low bound is pinned at 1 so zero-count cells collapse onto the first
// colour instead of producing an undefined log.
type LogColorScale struct {
	Palette Palette
	Low     float64
	High    float64
}

func NewLogColorScale(pal Palette, high float64) LogColorScale {
	if high < 1 {
		high = 1
	}
	return LogColorScale{
		Palette: pal,
		Low:     1,
		High:    high,
	}
}

func (s LogColorScale) Color(v float64) string {
	if len(s.Palette) == 0 {
		return currentColour
	}
	if v <= s.Low {
		return s.Palette[0]
	}
	if v >= s.High {
		return s.Palette[len(s.Palette)-1]
	}
	var (
		span = math.Log(s.High) - math.Log(s.Low)
		frac = (math.Log(v) - math.Log(s.Low)) / span
		idx  = int(frac * float64(len(s.Palette)-1))
	)
	return s.Palette[idx]
}

type HeatmapRenderer[T, U ~string] struct {
	Scale   LogColorScale
	WithBar bool
}

func (r HeatmapRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	grp := getBaseGroup("", "heatmap")
	for _, pt := range serie.Points {
		var el svg.Rect
		el.Title = string(pt.X) + "/" + string(pt.Y)
		el.Pos = svg.NewPos(serie.X.Scale(pt.X), serie.Y.Scale(pt.Y))
		el.Dim = svg.NewDim(serie.X.Space(), serie.Y.Space())
		el.Fill = svg.NewFill(r.Scale.Color(pt.Val))
		grp.Append(el.AsElement())
	}
	if r.WithBar {
		grp.Append(r.renderBar(serie))
	}
	return grp.AsElement()
}

func (r HeatmapRenderer[T, U]) renderBar(serie Serie[T, U]) svg.Element {
	var (
		g      svg.Group
		count  = len(r.Scale.Palette)
		height = serie.Y.Max() / float64(count)
	)
	g.Class = append(g.Class, "colorbar")
	g.Transform = svg.Translate(serie.X.Max()+FontSize, 0)
	for i, color := range r.Scale.Palette {
		var el svg.Rect
		el.Pos = svg.NewPos(0, serie.Y.Max()-float64(i+1)*height)
		el.Dim = svg.NewDim(FontSize, height)
		el.Fill = svg.NewFill(color)
		g.Append(el.AsElement())
	}
	for i, v := range []float64{r.Scale.Low, r.Scale.High} {
		tx := svg.NewText(formatCount(v))
		tx.Font = svg.NewFont(FontSize * 0.8)
		tx.Pos = svg.NewPos(FontSize*1.4, serie.Y.Max()*float64(1-i))
		tx.Baseline = "middle"
		g.Append(tx.AsElement())
	}
	return g.AsElement()
}
