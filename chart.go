package obeviz

import (
	"bufio"
	"io"

	"github.com/midbel/svg"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

type LegendEntry struct {
	Label string
	Color string
}

type Chart[T, U ScalerConstraint] struct {
	Title  string
	Width  float64
	Height float64

	Padding

	Left   Axis
	Right  Axis
	Top    Axis
	Bottom Axis

	Legend struct {
		Title   string
		Orient  Orientation
		Entries []LegendEntry
	}
}

func (c Chart[T, U]) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Chart[T, U]) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

func (c Chart[T, U]) Render(w io.Writer, set ...Data) {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(c.Width, c.Height)
	el.OmitProlog = true

	el.Append(c.drawAxis())
	if c.Title != "" {
		el.Append(c.drawTitle())
	}
	for _, s := range set {
		ar := c.getArea()
		ar.Append(s.Render())
		el.Append(ar.AsElement())
	}
	if lg := c.drawLegend(); lg != nil {
		el.Append(lg)
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
}

func (c Chart[T, U]) getArea() svg.Group {
	var g svg.Group
	g.Class = append(g.Class, "area")
	g.Transform = svg.Translate(c.Padding.Left, c.Padding.Top)
	return g
}

func (c Chart[T, U]) drawTitle() svg.Element {
	return titleElement(c.Title, c.Width)
}

func (c Chart[T, U]) drawLegend() svg.Element {
	if len(c.Legend.Entries) == 0 {
		return nil
	}
	var (
		offset = FontSize * 1.4
		height = float64(len(c.Legend.Entries)) * offset
		width  float64
		grp    svg.Group
	)
	if c.Legend.Title != "" {
		height += offset
		tx := svg.NewText(c.Legend.Title)
		tx.Pos = svg.NewPos(0, -offset/2)
		tx.Font = svg.NewFont(FontSize)
		tx.Baseline = "middle"
		grp.Append(tx.AsElement())
	}
	for i, e := range c.Legend.Entries {
		if n := float64(len(e.Label)); i == 0 || n > width {
			width = n
		}
		var g svg.Group
		g.Transform = svg.Translate(0, float64(i)*offset+offset/2)
		li := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(20, 0))
		li.Stroke = svg.NewStroke(e.Color, 3)

		tx := svg.NewText(e.Label)
		tx.Pos = svg.NewPos(30, 0)
		tx.Font = svg.NewFont(FontSize)
		tx.Baseline = "middle"

		g.Append(li.AsElement())
		g.Append(tx.AsElement())
		grp.Append(g.AsElement())
	}
	width = width*FontSize*0.6 + 30

	var left, top float64
	switch c.Legend.Orient {
	case OrientRight:
		left = c.Width - width
		top = (c.Height - height) / 2
	case OrientRight | OrientBottom:
		left = c.Width - width
		top = c.Height - c.Padding.Bottom - height
	case OrientBottom:
		left = (c.Width - width) / 2
		top = c.Height - c.Padding.Bottom - height
	case OrientLeft | OrientBottom:
		left = c.Padding.Left
		top = c.Height - c.Padding.Bottom - height
	case OrientLeft:
		left = c.Padding.Left
		top = (c.Height - c.Padding.Vertical() - height) / 2
	case OrientLeft | OrientTop:
		top = c.Padding.Top
		left = c.Padding.Left
	case OrientTop:
		left = (c.Width - width) / 2
		top = c.Padding.Top
	case OrientRight | OrientTop:
		top = c.Padding.Top
		left = c.Width - width
	default:
		left = c.Width - width
		top = (c.Height - height) / 2
	}
	grp.Transform = svg.Translate(left, top)
	return grp.AsElement()
}

func (c Chart[T, U]) drawAxis() svg.Element {
	var g svg.Group
	g.Id = "axis"
	if c.Left != nil {
		el := c.Left.Render(c.DrawingHeight(), c.DrawingWidth(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	}
	if c.Right != nil {
		el := c.Right.Render(c.DrawingHeight(), c.DrawingWidth(), c.Width-c.Padding.Right, c.Padding.Top)
		g.Append(el)
	}
	if c.Top != nil {
		el := c.Top.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	}
	if c.Bottom != nil {
		el := c.Bottom.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Height-c.Padding.Bottom)
		g.Append(el)
	}
	return g.AsElement()
}
