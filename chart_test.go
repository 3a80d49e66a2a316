package obeviz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChartRenderBars(t *testing.T) {
	var ch Chart[string, float64]
	ch.Title = "counts by gender"
	ch.Width = 600
	ch.Height = 300
	ch.Padding = Padding{Top: 40, Right: 20, Bottom: 50, Left: 60}

	var (
		xs = StringScaler([]string{"Female", "Male"}, NewRange(0, ch.DrawingWidth()))
		ys = InvertScaler(NumberDomain(0, 100), NewRange(0, ch.DrawingHeight()))
	)
	ch.Bottom = CategoryAxis{Orientation: OrientBottom, Scaler: xs, WithInnerTicks: true}
	ch.Left = NumberAxis{Orientation: OrientLeft, Ticks: 5, Scaler: ys, WithLabelTicks: true}

	serie := Serie[string, float64]{
		X:        xs,
		Y:        ys,
		Renderer: BarRenderer[string, float64]{Fill: BuRd6, Width: 0.9},
		Points: []Point[string, float64]{
			CategoryPoint("Female", 40),
			CategoryPoint("Male", 90),
		},
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "counts by gender")
	require.Contains(t, out, "Female")
}

func TestLinearRendererMarkers(t *testing.T) {
	var ch Chart[float64, float64]
	ch.Width = 400
	ch.Height = 200
	ch.Padding = Padding{Top: 20, Right: 20, Bottom: 30, Left: 40}

	var (
		xs = NumberScaler(NumberDomain(0, 10), NewRange(0, ch.DrawingWidth()))
		ys = InvertScaler(NumberDomain(0, 50), NewRange(0, ch.DrawingHeight()))
	)
	serie := Serie[float64, float64]{
		Title: "counts",
		Color: BuRd5.Color(0),
		X:     xs,
		Y:     ys,
		Renderer: LinearRenderer[float64, float64]{
			Color: BuRd5.Color(0),
			Point: GetCircle,
		},
		Points: []Point[float64, float64]{
			NumberPoint(0, 10),
			NumberPoint(5, 30),
			NumberPoint(10, 20),
		},
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	out := buf.String()
	require.Contains(t, out, "<path")
	require.Equal(t, 3, strings.Count(out, "<circle"))
}

func TestInvertScaler(t *testing.T) {
	ys := InvertScaler(NumberDomain(0, 100), NewRange(0, 200))
	require.InDelta(t, 200, ys.Scale(0), 1e-9)
	require.InDelta(t, 0, ys.Scale(100), 1e-9)
	require.InDelta(t, 100, ys.Scale(50), 1e-9)
}

func TestStringScaler(t *testing.T) {
	xs := StringScaler([]string{"a", "b", "c", "d"}, NewRange(0, 100))
	require.InDelta(t, 25, xs.Space(), 1e-9)
	require.InDelta(t, 0, xs.Scale("a"), 1e-9)
	require.InDelta(t, 50, xs.Scale("c"), 1e-9)

	empty := StringScaler(nil, NewRange(0, 100))
	require.Zero(t, empty.Space())
}

func TestLogColorScale(t *testing.T) {
	scale := NewLogColorScale(RdBu11, 1000)
	require.Equal(t, RdBu11[0], scale.Color(0))
	require.Equal(t, RdBu11[0], scale.Color(1))
	require.Equal(t, RdBu11[len(RdBu11)-1], scale.Color(1000))
	require.Equal(t, RdBu11[len(RdBu11)-1], scale.Color(5000))

	mid := scale.Color(31)
	require.NotEqual(t, RdBu11[0], mid)
	require.NotEqual(t, RdBu11[len(RdBu11)-1], mid)
}

func TestDonutRender(t *testing.T) {
	donut := NewDonut("habit split")
	donut.Categories = []string{"no", "yes"}
	donut.Rows = []DonutRow{
		{Label: "Normal Weight", Group: "Female", Counts: []float64{120, 30}},
		{Label: "Normal Weight", Group: "Male", Counts: []float64{100, 45}},
		{Label: "Overweight Level I", Group: "Female", Counts: []float64{80, 60}},
		{Label: "Overweight Level I", Group: "Male", Counts: []float64{90, 70}},
	}

	var buf bytes.Buffer
	require.NoError(t, donut.Render(&buf))
	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "habit split")
	require.Contains(t, out, "Normal Weight")
}

func TestSankeyRender(t *testing.T) {
	sankey := NewSankey("risk flows")
	sankey.Layers = [][]string{
		{"no", "yes"},
		{"Female", "Male"},
	}
	sankey.Headers = []string{"Diabetes", "Gender"}
	sankey.Links = []SankeyLink{
		{Source: "no", Target: "Female", Value: 120},
		{Source: "no", Target: "Male", Value: 90},
		{Source: "yes", Target: "Female", Value: 30},
	}

	var buf bytes.Buffer
	require.NoError(t, sankey.Render(&buf))
	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "Gender")
}

func TestSankeyLayoutErrors(t *testing.T) {
	dup := NewSankey("dup")
	dup.Layers = [][]string{{"a"}, {"a"}}
	var buf bytes.Buffer
	require.Error(t, dup.Render(&buf))

	missing := NewSankey("missing")
	missing.Layers = [][]string{{"a"}, {"b"}}
	missing.Links = []SankeyLink{{Source: "a", Target: "c", Value: 1}}
	buf.Reset()
	require.Error(t, missing.Render(&buf))
}

func TestCrosstabRender(t *testing.T) {
	ct := NewCrosstab("shares")
	ct.Categories = []string{"Normal Weight", "Overweight Level I"}
	ct.Rows = []CrosstabRow{
		{Label: "no", Parts: []float64{0.7, 0.3}, Total: 0.6},
		{Label: "yes", Parts: []float64{0.2, 0.8}, Total: 0.4},
	}

	var buf bytes.Buffer
	require.NoError(t, ct.Render(&buf))
	require.Contains(t, buf.String(), "<svg")

	bad := NewCrosstab("bad")
	bad.Categories = []string{"a", "b"}
	bad.Rows = []CrosstabRow{{Label: "no", Parts: []float64{1}}}
	buf.Reset()
	require.Error(t, bad.Render(&buf))
}

func TestPalettes(t *testing.T) {
	require.Len(t, BuRd5, 5)
	require.Len(t, BuRd6, 6)
	require.Len(t, BuRd7, 7)
	require.Len(t, RdBu11, 11)
	for _, c := range RdBu11 {
		require.True(t, strings.HasPrefix(c, "#"))
		require.Len(t, c, 7)
	}
	// cycles past the end
	require.Equal(t, BuRd5[0], BuRd5.Color(5))
}
