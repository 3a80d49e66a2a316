package obeviz

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/svg"
)

// DonutRow is one outer wedge: a class label, the level of the binary
// variable it belongs to, and one count per inner category.
type DonutRow struct {
	Label  string
	Group  string
	Counts []float64
}

// Donut draws the radial chart of the second dashboard page: a ring of
// wedges split by a binary variable, nested bars for every category of the
// filter variable, and fixed gridline circles spaced by the radial
// transform.
type Donut struct {
	Title  string
	Width  float64
	Height float64

	Categories []string
	Rows       []DonutRow

	Root        int
	CountLimit  int
	TickCount   int
	ScaleFactor float64
	MinDomain   float64
	MaxDomain   float64

	Fill      Palette
	GroupFill Palette
}

func NewDonut(title string) Donut {
	return Donut{
		Title:       title,
		Width:       700,
		Height:      700,
		Root:        4,
		CountLimit:  40000,
		TickCount:   7,
		ScaleFactor: 14.2,
		MinDomain:   10,
		MaxDomain:   300000,
		Fill:        BuRd7,
		GroupFill:   Palette{"#a05d2f", "#fc9957"},
	}
}

func (d Donut) Render(w io.Writer) error {
	minVal, err := NthRoot(d.MinDomain, d.Root)
	if err != nil {
		return err
	}
	maxVal, err := NthRoot(d.MaxDomain, d.Root)
	if err != nil {
		return err
	}

	el := svg.NewSVG()
	el.Dim = svg.NewDim(d.Width, d.Height)
	el.OmitProlog = true

	var root svg.Group
	root.Class = append(root.Class, "donut")
	root.Transform = svg.Translate(d.Width/2, d.Height/2)

	var (
		big    = (2*math.Pi + 0.05) / float64(len(d.Rows)+1)
		small  = big / 14
		inner  = minVal * d.ScaleFactor
		groups = make(map[string]string)
		order  []string
	)
	for _, row := range d.Rows {
		if _, ok := groups[row.Group]; !ok {
			groups[row.Group] = d.GroupFill.Color(len(order))
			order = append(order, row.Group)
		}
	}

	outer, err := ScaleRadius(float64(d.CountLimit), minVal, maxVal, d.Root)
	if err != nil {
		return err
	}
	for i, row := range d.Rows {
		start := math.Pi/2 - 3*big/2 - float64(i)*big
		wedge := annularWedge(inner, outer, start, start+big)
		wedge.Fill = svg.NewFill(groups[row.Group])
		wedge.Fill.Opacity = 0.75
		wedge.Stroke = svg.NewStroke("white", 1)
		root.Append(wedge.AsElement())
	}

	ticks := RadiusTicks(d.Root, d.CountLimit, d.TickCount)
	values := make([]float64, len(ticks))
	for i, t := range ticks {
		values[i] = float64(t)
	}
	radii, err := ScaleRadii(values, minVal, maxVal, d.Root)
	if err != nil {
		return err
	}
	for i, radius := range radii {
		var c svg.Circle
		c.Radius = radius
		c.Fill = svg.NewFill("none")
		c.Stroke = svg.NewStroke("#f0e1d2", 1)
		root.Append(c.AsElement())

		tx := svg.NewText(strconv.Itoa(RoundToNearest(ticks[i])))
		tx.Pos = svg.NewPos(0, -(radius + 2))
		tx.Font = svg.NewFont(FontSize)
		tx.Anchor = "middle"
		root.Append(tx.AsElement())
	}

	for c := range d.Categories {
		color := d.Fill.Color(c)
		for i, row := range d.Rows {
			if c >= len(row.Counts) {
				continue
			}
			base := math.Pi/2 - 3*big/2 - float64(i)*big
			var (
				from = base + (12.25-2*float64(c))*small
				to   = base + (13.75-2*float64(c))*small
			)
			top, err := ScaleRadius(row.Counts[c], minVal, maxVal, d.Root)
			if err != nil {
				return err
			}
			bar := annularWedge(inner, top, from, to)
			bar.Fill = svg.NewFill(color)
			root.Append(bar.AsElement())
		}
	}

	margin := slicesMax(radii) * 1.03
	for i, row := range d.Rows {
		mid := math.Pi/2 - 3*big/2 - float64(i)*big + big/2
		var (
			x = margin * math.Cos(mid)
			y = -margin * math.Sin(mid)
		)
		tx := svg.NewText(strings.Join(strings.Fields(row.Label), " "))
		tx.Pos = svg.NewPos(x, y)
		tx.Font = svg.NewFont(FontSize + 1)
		tx.Anchor = "middle"
		tx.Baseline = "middle"

		var g svg.Group
		g.Transform.RA = 90 - mid/deg2rad
		g.Transform.RX = x
		g.Transform.RY = y
		g.Append(tx.AsElement())
		root.Append(g.AsElement())
	}

	root.Append(d.categoryLegend())
	root.Append(d.groupLegend(order, groups))

	el.Append(titleElement(d.Title, d.Width))
	el.Append(root.AsElement())

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
	return nil
}

func (d Donut) categoryLegend() svg.Element {
	var (
		grp    svg.Group
		offset = FontSize * 1.3
		top    = -float64(len(d.Categories)) * offset / 2
	)
	grp.Class = append(grp.Class, "legend")
	for i, cat := range d.Categories {
		var sw svg.Rect
		sw.Pos = svg.NewPos(-60, top+float64(i)*offset)
		sw.Dim = svg.NewDim(24, FontSize*0.8)
		sw.Fill = svg.NewFill(d.Fill.Color(i))
		grp.Append(sw.AsElement())

		tx := svg.NewText(cat)
		tx.Pos = svg.NewPos(-28, top+float64(i)*offset+FontSize*0.7)
		tx.Font = svg.NewFont(FontSize)
		grp.Append(tx.AsElement())
	}
	return grp.AsElement()
}

func (d Donut) groupLegend(order []string, colors map[string]string) svg.Element {
	var grp svg.Group
	grp.Class = append(grp.Class, "legend")
	grp.Transform = svg.Translate(-d.Width/2+20, -d.Height/2+20)
	for i, label := range order {
		var sw svg.Rect
		sw.Pos = svg.NewPos(float64(i)*110, 0)
		sw.Dim = svg.NewDim(24, FontSize*0.8)
		sw.Fill = svg.NewFill(colors[label])
		grp.Append(sw.AsElement())

		tx := svg.NewText(label)
		tx.Pos = svg.NewPos(float64(i)*110+32, FontSize*0.7)
		tx.Font = svg.NewFont(FontSize)
		grp.Append(tx.AsElement())
	}
	return grp.AsElement()
}

// annularWedge traces a ring segment between two angles, in math
// orientation (positive angles run counter clockwise).
func annularWedge(inner, outer, from, to float64) svg.Path {
	var (
		pat   svg.Path
		large = to-from > math.Pi
		p1    = svg.NewPos(outer*math.Cos(from), -outer*math.Sin(from))
		p2    = svg.NewPos(outer*math.Cos(to), -outer*math.Sin(to))
		p3    = svg.NewPos(inner*math.Cos(to), -inner*math.Sin(to))
		p4    = svg.NewPos(inner*math.Cos(from), -inner*math.Sin(from))
	)
	pat.Rendering = "geometricPrecision"
	pat.AbsMoveTo(p1)
	pat.AbsArcTo(p2, outer, outer, 0, large, false)
	pat.AbsLineTo(p3)
	pat.AbsArcTo(p4, inner, inner, 0, large, true)
	pat.ClosePath()
	return pat
}

func titleElement(title string, width float64) svg.Element {
	var (
		grp    svg.Group
		offset = FontSize * 1.4
	)
	for i, line := range strings.Split(title, "\n") {
		tx := svg.NewText(line)
		tx.Pos = svg.NewPos(width/2, offset+float64(i)*offset)
		tx.Font = svg.NewFont(FontSize + 4)
		tx.Anchor = "middle"
		grp.Append(tx.AsElement())
	}
	return grp.AsElement()
}

func slicesMax(vs []float64) float64 {
	var m float64
	for i, v := range vs {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
