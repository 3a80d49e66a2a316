package obeviz

import (
	"bufio"
	"fmt"
	"io"

	"github.com/midbel/svg"
)

// CrosstabRow is one category of the filter variable: its share of each
// class (row-normalized, sums to 1 unless the category is empty) and its
// share of the grand total.
type CrosstabRow struct {
	Label string
	Parts []float64
	Total float64
}

// Crosstab draws horizontal stacked proportion bars, one band per filter
// category, with a margin-total bar under each stack.
type Crosstab struct {
	Title  string
	Width  float64
	Height float64
	Pad    Padding

	Categories []string
	Rows       []CrosstabRow

	Fill      Palette
	TotalFill string
}

func NewCrosstab(title string) Crosstab {
	return Crosstab{
		Title:     title,
		Width:     700,
		Height:    550,
		Pad:       Padding{Top: 60, Right: 30, Bottom: 30, Left: 90},
		Fill:      BuRd5,
		TotalFill: "#65aedd",
	}
}

func (c Crosstab) Render(w io.Writer) error {
	for _, row := range c.Rows {
		if len(row.Parts) != len(c.Categories) {
			return fmt.Errorf("crosstab: row %s has %d parts for %d categories", row.Label, len(row.Parts), len(c.Categories))
		}
	}

	el := svg.NewSVG()
	el.Dim = svg.NewDim(c.Width, c.Height)
	el.OmitProlog = true
	el.Append(titleElement(c.Title, c.Width))

	var (
		dw   = c.Width - c.Pad.Horizontal()
		dh   = c.Height - c.Pad.Vertical()
		band = dh / float64(len(c.Rows))
		grp  svg.Group
	)
	grp.Transform = svg.Translate(c.Pad.Left, c.Pad.Top)

	for i, row := range c.Rows {
		var (
			top = float64(i) * band
			off float64
		)
		for j, part := range row.Parts {
			width := part * dw
			var seg svg.Rect
			seg.Title = c.Categories[j]
			seg.Pos = svg.NewPos(off, top+0.15*band)
			seg.Dim = svg.NewDim(width, 0.3*band)
			seg.Fill = svg.NewFill(c.Fill.Color(j))
			grp.Append(seg.AsElement())

			if part > 0 {
				grp.Append(rotatedText(c.Categories[j], off+width, top+0.12*band, FontSize*0.9))
			}
			off += width
		}

		var tot svg.Rect
		tot.Title = row.Label
		tot.Pos = svg.NewPos(0, top+0.55*band)
		tot.Dim = svg.NewDim(row.Total*dw, 0.3*band)
		tot.Fill = svg.NewFill(c.TotalFill)
		grp.Append(tot.AsElement())

		grp.Append(bandText("Partial", -FontSize, top+0.3*band))
		grp.Append(bandText("Total", -FontSize, top+0.7*band))
		grp.Append(bandText(row.Label, -FontSize*4, top+band/2))

		if i > 0 {
			sep := svg.NewLine(svg.NewPos(0, top), svg.NewPos(dw, top))
			sep.Stroke = svg.NewStroke("white", 1)
			grp.Append(sep.AsElement())
		}
	}
	el.Append(grp.AsElement())

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
	return nil
}

func bandText(label string, x, y float64) svg.Element {
	return rotatedText(label, x, y, FontSize)
}

func rotatedText(label string, x, y, size float64) svg.Element {
	tx := svg.NewText(label)
	tx.Pos = svg.NewPos(x, y)
	tx.Font = svg.NewFont(size)
	tx.Anchor = "middle"
	tx.Baseline = "middle"

	var g svg.Group
	g.Transform.RA = -90
	g.Transform.RX = x
	g.Transform.RY = y
	g.Append(tx.AsElement())
	return g.AsElement()
}
