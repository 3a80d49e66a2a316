package obeviz

import (
	"math"

	"github.com/midbel/slices"
	"github.com/midbel/svg"
)

const currentColour = "currentColour"

type Renderer[T, U ScalerConstraint] interface {
	Render(Serie[T, U]) svg.Element
}

type BarRenderer[T ~string, U ~float64] struct {
	Fill      Palette
	Width     float64
	WithValue bool
}

func (r BarRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.Width <= 0 {
		r.Width = 1
	}
	grp := getBaseGroup("", "bar")
	for i, pt := range serie.Points {
		var (
			w   = serie.X.Space() * r.Width
			o   = (serie.X.Space() - w) / 2
			x   = serie.X.Scale(pt.X) + o
			y   = serie.Y.Scale(pt.Y)
			pos = svg.NewPos(x, y)
			dim = svg.NewDim(w, serie.Y.Len()-y)
		)
		var el svg.Rect
		el.Title = string(pt.X)
		el.Pos = pos
		el.Dim = dim
		el.Fill = svg.NewFill(r.Fill.Color(i))
		grp.Append(el.AsElement())
		if r.WithValue {
			val := barValue(float64(pt.Y), x+w/2, y)
			grp.Append(val.AsElement())
		}
	}
	return grp.AsElement()
}

// GroupedBarRenderer draws one cluster of bars per sub-serie; the serie's X
// scaler positions the clusters, the sub-serie's X scaler the bars inside.
type GroupedBarRenderer[T ~string, U ~float64] struct {
	Fill  Palette
	Width float64
}

func (r GroupedBarRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.Width <= 0 {
		r.Width = 1
	}
	var grp svg.Group
	grp.Class = append(grp.Class, "bar", "bar-grouped")
	for _, s := range serie.Series {
		bar := getBaseGroup("", "bar")
		bar.Transform = svg.Translate(serie.X.Scale(T(s.Title)), 0)
		for i, pt := range s.Points {
			var (
				w = s.X.Space() * r.Width
				x = s.X.Scale(pt.X) + (s.X.Space()-w)/2
				y = s.Y.Scale(pt.Y)
			)
			var el svg.Rect
			el.Title = string(pt.X)
			el.Pos = svg.NewPos(x, y)
			el.Dim = svg.NewDim(w, s.Y.Len()-y)
			el.Fill = svg.NewFill(r.Fill.Color(i))
			bar.Append(el.AsElement())
		}
		grp.Append(bar.AsElement())
	}
	return grp.AsElement()
}

type LinearRenderer[T, U ScalerConstraint] struct {
	Fill          bool
	Color         string
	Skip          int
	Point         PointFunc
	IgnoreMissing bool
}

func (r LinearRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	var (
		grp = getBaseGroup(r.Color, "line")
		pat = getBasePath(r.Fill)
		pos svg.Pos
		nan bool
	)
	grp.Id = serie.Title
	for i, pt := range serie.Points {
		if r.Skip != 0 && i > 0 && i%r.Skip == 0 {
			continue
		}
		if f, ok := isFloat(pt.Y); ok && math.IsNaN(f) {
			nan = true
			continue
		}
		pos.X = serie.X.Scale(pt.X)
		pos.Y = serie.Y.Scale(pt.Y)
		if i == 0 || (nan && !r.IgnoreMissing) {
			nan = false
			pat.AbsMoveTo(pos)
		} else {
			pat.AbsLineTo(pos)
		}
		if r.Point != nil {
			if el := r.Point(pos); el != nil {
				grp.Append(el)
			}
		}
	}
	if r.Fill && len(serie.Points) > 0 {
		pos.Y = serie.Y.Len()
		pat.AbsLineTo(pos)
		first := slices.Fst(serie.Points)
		pat.AbsLineTo(svg.NewPos(serie.X.Scale(first.X), pos.Y))
	}
	grp.Append(pat.AsElement())
	return grp.AsElement()
}

type PieRenderer[T ~string, U ~float64] struct {
	Fill        Palette
	InnerRadius float64
	OuterRadius float64
}

func (r PieRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.InnerRadius <= 0 {
		r.InnerRadius = r.OuterRadius
	}
	total := sumY(serie.Points)
	if total == 0 {
		empty := getBaseGroup("", "pie")
		return empty.AsElement()
	}
	var (
		part  = fullcircle / total
		angle float64
		grp   = getBaseGroup("", "pie")
	)
	grp.Transform = svg.Translate(serie.X.Max()/2, serie.Y.Max()/2)
	for i, pt := range serie.Points {
		var (
			rad  = angle * deg2rad
			val  = float64(pt.Y) * part
			pos3 = r.getPos3(angle, val)
			pos4 = r.getPos4(rad)
			pat  svg.Path
		)
		pat.Rendering = "geometricPrecision"
		pat.Fill = svg.NewFill(r.Fill.Color(i))
		pat.Stroke = svg.NewStroke("white", 1)

		pat.AbsMoveTo(r.getPos1(rad))
		pat.AbsArcTo(r.getPos2(angle, val), r.OuterRadius, r.OuterRadius, 0, val > halfcircle, true)
		pat.AbsLineTo(pos3)
		if pos3.X != pos4.X && pos3.Y != pos4.Y {
			pat.AbsArcTo(pos4, r.difference(), r.difference(), 0, val > halfcircle, false)
		}
		pat.AbsLineTo(r.getPos1(rad))
		pat.ClosePath()
		grp.Append(pat.AsElement())

		angle += val
	}
	return grp.AsElement()
}

func (r PieRenderer[T, U]) getPos4(rad float64) svg.Pos {
	return getPosFromAngle(rad, r.difference())
}

func (r PieRenderer[T, U]) getPos3(angle, rad float64) svg.Pos {
	return getPosFromAngle((angle+rad)*deg2rad, r.difference())
}

func (r PieRenderer[T, U]) getPos2(angle, rad float64) svg.Pos {
	return getPosFromAngle((angle+rad)*deg2rad, r.OuterRadius)
}

func (r PieRenderer[T, U]) getPos1(rad float64) svg.Pos {
	return getPosFromAngle(rad, r.OuterRadius)
}

func (r PieRenderer[T, U]) difference() float64 {
	return r.OuterRadius - r.InnerRadius
}

func barValue(val, x, y float64) svg.Text {
	txt := svg.NewText(formatCount(val))
	txt.Pos = svg.NewPos(x, y-FontSize*0.4)
	txt.Font = svg.NewFont(FontSize * 0.8)
	txt.Anchor = "middle"
	return txt
}

func getBasePath(fill bool) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Stroke = svg.NewStroke(currentColour, 2)
	if fill {
		pat.Fill = svg.NewFill(currentColour)
		pat.Fill.Opacity = 0.5
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}

const (
	fullcircle = 360.0
	halfcircle = 180.0
	deg2rad    = math.Pi / halfcircle
)

func getPosFromAngle(angle, radius float64) svg.Pos {
	var (
		x1 = radius * math.Cos(angle)
		y1 = radius * math.Sin(angle)
	)
	return svg.NewPos(x1, y1)
}

func sumY[T, U ScalerConstraint](points []Point[T, U]) float64 {
	var total float64
	for _, pt := range points {
		f, ok := isFloat(pt.Y)
		if ok {
			total += f
		}
	}
	return total
}

func isFloat[T any](v T) (float64, bool) {
	x, ok := any(v).(float64)
	return x, ok
}
