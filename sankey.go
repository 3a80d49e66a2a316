package obeviz

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/midbel/svg"
)

type SankeyLink struct {
	Source string
	Target string
	Value  float64
}

// Sankey draws a layered flow diagram: every node lives in exactly one
// column, links only join adjacent columns.
type Sankey struct {
	Title  string
	Width  float64
	Height float64
	Pad    Padding

	Layers  [][]string
	Headers []string
	Links   []SankeyLink
	Fill    Palette

	NodeWidth float64
	NodeGap   float64
}

func NewSankey(title string) Sankey {
	return Sankey{
		Title:     title,
		Width:     800,
		Height:    600,
		Pad:       Padding{Top: 80, Right: 120, Bottom: 20, Left: 20},
		Fill:      BuRd7,
		NodeWidth: 18,
		NodeGap:   8,
	}
}

type sankeyNode struct {
	label  string
	color  string
	x      float64
	y      float64
	height float64
	offOut float64
	offIn  float64
}

func (s Sankey) Render(w io.Writer) error {
	nodes, err := s.layout()
	if err != nil {
		return err
	}

	el := svg.NewSVG()
	el.Dim = svg.NewDim(s.Width, s.Height)
	el.OmitProlog = true
	el.Append(titleElement(s.Title, s.Width))

	var flows svg.Group
	flows.Class = append(flows.Class, "flows")
	for _, lk := range s.Links {
		var (
			src = nodes[lk.Source]
			dst = nodes[lk.Target]
		)
		scale := src.height / nodeTotal(s.Links, src.label)
		width := lk.Value * scale

		var (
			from = svg.NewPos(src.x+s.NodeWidth, src.y+src.offOut+width/2)
			to   = svg.NewPos(dst.x, dst.y+dst.offIn+width/2)
			mid  = (to.X - from.X) / 2
		)
		src.offOut += width
		dst.offIn += lk.Value * (dst.height / nodeTotal(s.Links, dst.label))

		pat := getBasePath(false)
		pat.Stroke = svg.NewStroke(src.color, math.Max(width, 1))
		pat.Stroke.Opacity = 0.4
		pat.AbsMoveTo(from)
		pat.AbsCubicCurve(to, svg.NewPos(from.X+mid, from.Y), svg.NewPos(to.X-mid, to.Y))
		flows.Append(pat.AsElement())
	}
	el.Append(flows.AsElement())

	var boxes svg.Group
	boxes.Class = append(boxes.Class, "nodes")
	for _, layer := range s.Layers {
		for _, label := range layer {
			n := nodes[label]
			var el svg.Rect
			el.Title = label
			el.Pos = svg.NewPos(n.x, n.y)
			el.Dim = svg.NewDim(s.NodeWidth, n.height)
			el.Fill = svg.NewFill(n.color)
			boxes.Append(el.AsElement())

			tx := svg.NewText(label)
			tx.Pos = svg.NewPos(n.x+s.NodeWidth+4, n.y+n.height/2)
			tx.Font = svg.NewFont(FontSize)
			tx.Baseline = "middle"
			boxes.Append(tx.AsElement())
		}
	}
	el.Append(boxes.AsElement())

	if len(s.Headers) > 0 {
		var heads svg.Group
		for k, label := range s.Headers {
			tx := svg.NewText(label)
			tx.Pos = svg.NewPos(s.columnX(k)+s.NodeWidth/2, s.Pad.Top-FontSize)
			tx.Font = svg.NewFont(FontSize + 2)
			tx.Anchor = "middle"
			heads.Append(tx.AsElement())
		}
		el.Append(heads.AsElement())
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
	return nil
}

func (s Sankey) layout() (map[string]*sankeyNode, error) {
	nodes := make(map[string]*sankeyNode)
	var index int
	for k, layer := range s.Layers {
		var total float64
		for _, label := range layer {
			if _, ok := nodes[label]; ok {
				return nil, fmt.Errorf("sankey: node %s appears in two layers", label)
			}
			total += nodeTotal(s.Links, label)
		}
		if total == 0 {
			total = 1
		}
		var (
			gaps  = float64(len(layer)-1) * s.NodeGap
			avail = s.Height - s.Pad.Vertical() - gaps
			y     = s.Pad.Top
		)
		for _, label := range layer {
			n := sankeyNode{
				label:  label,
				color:  s.Fill.Color(index),
				x:      s.columnX(k),
				y:      y,
				height: nodeTotal(s.Links, label) / total * avail,
			}
			nodes[label] = &n
			y += n.height + s.NodeGap
			index++
		}
	}
	for _, lk := range s.Links {
		if _, ok := nodes[lk.Source]; !ok {
			return nil, fmt.Errorf("sankey: unknown source node %s", lk.Source)
		}
		if _, ok := nodes[lk.Target]; !ok {
			return nil, fmt.Errorf("sankey: unknown target node %s", lk.Target)
		}
	}
	return nodes, nil
}

func (s Sankey) columnX(k int) float64 {
	cols := len(s.Layers)
	if cols <= 1 {
		return s.Pad.Left
	}
	step := (s.Width - s.Pad.Horizontal() - s.NodeWidth) / float64(cols-1)
	return s.Pad.Left + float64(k)*step
}

// nodeTotal is the larger of a node's inflow and outflow, so pass-through
// nodes keep a height that fits both sides.
func nodeTotal(links []SankeyLink, label string) float64 {
	var in, out float64
	for _, lk := range links {
		if lk.Source == label {
			out += lk.Value
		}
		if lk.Target == label {
			in += lk.Value
		}
	}
	total := math.Max(in, out)
	if total == 0 {
		return 1
	}
	return total
}
