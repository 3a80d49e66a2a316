package dash

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"sort"
	"strconv"

	"github.com/obeviz/obeviz"
	"github.com/obeviz/obeviz/frame"
)

const (
	chartWidth  = 600
	chartHeight = 300
)

// buildHeatmap counts survey rows by obesity class, age group and the filter
// variable, keeps the selected class and colours each (age group, level)
// cell on a log ramp bounded by the busiest cell of the whole melt.
func buildHeatmap(ds *frame.Dataset, filter, class string) (template.HTML, error) {
	wide, err := frame.Aggregate(ds, "nobeyesdad", "age_group", filter)
	if err != nil {
		return "", err
	}
	tidy, err := frame.Reshape(wide, []string{"nobeyesdad", "age_group"}, filter, "counts")
	if err != nil {
		return "", err
	}
	sub, err := tidy.Filter("nobeyesdad", class)
	if err != nil {
		return "", err
	}
	high, err := tidy.Max("counts")
	if err != nil {
		return "", err
	}
	groups, err := tidy.Levels("age_group")
	if err != nil {
		return "", err
	}
	levels, err := tidy.Levels(filter)
	if err != nil {
		return "", err
	}

	var ch obeviz.Chart[string, string]
	ch.Title = obeviz.BreakText(fmt.Sprintf("Heatmap for %s by %s", class, indexLabels.Get(filter)), 60)
	ch.Width = chartWidth
	ch.Height = chartHeight
	ch.Padding = obeviz.Padding{Top: 50, Right: 70, Bottom: 60, Left: 110}

	var (
		xs = obeviz.StringScaler(groups, obeviz.NewRange(0, ch.DrawingWidth()))
		ys = obeviz.StringScaler(levels, obeviz.NewRange(0, ch.DrawingHeight()))
	)
	ch.Bottom = obeviz.CategoryAxis{
		Label:          "Age Group",
		Orientation:    obeviz.OrientBottom,
		Scaler:         xs,
		WithInnerTicks: true,
	}
	ch.Left = obeviz.CategoryAxis{
		Label:          indexLabels.Get(filter),
		Orientation:    obeviz.OrientLeft,
		Scaler:         ys,
		WithInnerTicks: true,
	}

	serie := obeviz.Serie[string, string]{
		X: xs,
		Y: ys,
		Renderer: obeviz.HeatmapRenderer[string, string]{
			Scale:   obeviz.NewLogColorScale(obeviz.RdBu11, high),
			WithBar: true,
		},
	}
	var (
		gs, _ = sub.Labels("age_group")
		ls, _ = sub.Labels(filter)
		cs, _ = sub.Numbers("counts")
	)
	for i := range cs {
		serie.Points = append(serie.Points, obeviz.CellPoint(gs[i], ls[i], cs[i]))
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	return template.HTML(buf.String()), nil
}

// buildBar plots counts for the selected class split by gender. When the
// filter variable is the gender itself the split would be redundant, a plain
// bar per gender is drawn instead of gender clusters.
func buildBar(ds *frame.Dataset, filter, class string) (template.HTML, error) {
	if filter == "gender" {
		return buildSimpleBar(ds, class)
	}
	wide, err := frame.Aggregate(ds, "nobeyesdad", "gender", filter)
	if err != nil {
		return "", err
	}
	tidy, err := frame.Reshape(wide, []string{"nobeyesdad", "gender"}, filter, "counts")
	if err != nil {
		return "", err
	}
	max, err := tidy.Max("counts")
	if err != nil {
		return "", err
	}
	sub, err := tidy.Filter("nobeyesdad", class)
	if err != nil {
		return "", err
	}
	genders, err := sub.Levels("gender")
	if err != nil {
		return "", err
	}
	levels, err := tidy.Levels(filter)
	if err != nil {
		return "", err
	}

	var ch obeviz.Chart[string, float64]
	ch.Title = obeviz.BreakText(fmt.Sprintf("Grouped Bar Plot for %s by %s", indexLabels.Get(filter), class), 60)
	ch.Width = chartWidth
	ch.Height = chartHeight
	ch.Padding = obeviz.Padding{Top: 50, Right: 20, Bottom: 60, Left: 70}

	var (
		xs = obeviz.StringScaler(genders, obeviz.NewRange(0, ch.DrawingWidth()))
		ys = obeviz.InvertScaler(obeviz.NumberDomain(0, max*1.05), obeviz.NewRange(0, ch.DrawingHeight()))
	)
	ch.Bottom = obeviz.CategoryAxis{
		Label:          indexLabels.Get(filter),
		Orientation:    obeviz.OrientBottom,
		Scaler:         xs,
		WithInnerTicks: true,
	}
	ch.Left = obeviz.NumberAxis{
		Label:          "Counts",
		Orientation:    obeviz.OrientLeft,
		Ticks:          5,
		Scaler:         ys,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}

	serie := obeviz.Serie[string, float64]{
		X: xs,
		Y: ys,
		Renderer: obeviz.GroupedBarRenderer[string, float64]{
			Fill:  obeviz.BuRd6,
			Width: 0.9,
		},
	}
	for _, gender := range genders {
		part, err := sub.Filter("gender", gender)
		if err != nil {
			return "", err
		}
		counts := make(map[string]float64)
		var (
			ls, _ = part.Labels(filter)
			cs, _ = part.Numbers("counts")
		)
		for i := range cs {
			counts[ls[i]] = cs[i]
		}
		inner := obeviz.Serie[string, float64]{
			Title: gender,
			X:     obeviz.StringScaler(levels, obeviz.NewRange(0, xs.Space())),
			Y:     ys,
		}
		for _, lv := range levels {
			inner.Points = append(inner.Points, obeviz.CategoryPoint(lv, counts[lv]))
		}
		serie.Series = append(serie.Series, inner)
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	return template.HTML(buf.String()), nil
}

func buildSimpleBar(ds *frame.Dataset, class string) (template.HTML, error) {
	wide, err := frame.Aggregate(ds, "nobeyesdad", "gender")
	if err != nil {
		return "", err
	}
	tidy, err := frame.Reshape(wide, []string{"nobeyesdad"}, "gender", "counts")
	if err != nil {
		return "", err
	}
	max, err := tidy.Max("counts")
	if err != nil {
		return "", err
	}
	sub, err := tidy.Filter("nobeyesdad", class)
	if err != nil {
		return "", err
	}
	genders, err := sub.Levels("gender")
	if err != nil {
		return "", err
	}

	var ch obeviz.Chart[string, float64]
	ch.Title = obeviz.BreakText(fmt.Sprintf("Bar Plot for Gender by %s", class), 60)
	ch.Width = chartWidth
	ch.Height = chartHeight
	ch.Padding = obeviz.Padding{Top: 50, Right: 20, Bottom: 60, Left: 70}

	var (
		xs = obeviz.StringScaler(genders, obeviz.NewRange(0, ch.DrawingWidth()))
		ys = obeviz.InvertScaler(obeviz.NumberDomain(0, max*1.05), obeviz.NewRange(0, ch.DrawingHeight()))
	)
	ch.Bottom = obeviz.CategoryAxis{
		Label:          "Gender",
		Orientation:    obeviz.OrientBottom,
		Scaler:         xs,
		WithInnerTicks: true,
	}
	ch.Left = obeviz.NumberAxis{
		Label:          "Counts",
		Orientation:    obeviz.OrientLeft,
		Ticks:          5,
		Scaler:         ys,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}

	serie := obeviz.Serie[string, float64]{
		X: xs,
		Y: ys,
		Renderer: obeviz.BarRenderer[string, float64]{
			Fill:      obeviz.BuRd6,
			Width:     0.9,
			WithValue: true,
		},
	}
	var (
		gs, _ = sub.Labels("gender")
		cs, _ = sub.Numbers("counts")
	)
	counts := make(map[string]float64)
	for i := range cs {
		counts[gs[i]] = cs[i]
	}
	for _, gender := range genders {
		serie.Points = append(serie.Points, obeviz.CategoryPoint(gender, counts[gender]))
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	return template.HTML(buf.String()), nil
}

// buildLine draws one line per obesity class: counts by age, summed across
// every level of the filter variable.
func buildLine(ds *frame.Dataset, filter string) (template.HTML, error) {
	wide, err := frame.Aggregate(ds, "nobeyesdad", "age", filter)
	if err != nil {
		return "", err
	}
	classes, err := wide.Levels("nobeyesdad")
	if err != nil {
		return "", err
	}

	type linePoint struct {
		age float64
		sum float64
	}
	var (
		lines  = make(map[string][]linePoint)
		minAge = math.Inf(1)
		maxAge = math.Inf(-1)
		maxSum float64
	)
	for _, class := range classes {
		sub, err := wide.Filter("nobeyesdad", class)
		if err != nil {
			return "", err
		}
		var (
			ages, _ = sub.Labels("age")
			sums    = sub.SumAcross()
			pts     []linePoint
		)
		for i, raw := range ages {
			age, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return "", fmt.Errorf("line plot: age %q: %w", raw, err)
			}
			if sums[i] == 0 {
				continue
			}
			pts = append(pts, linePoint{age: age, sum: sums[i]})
			minAge = math.Min(minAge, age)
			maxAge = math.Max(maxAge, age)
			maxSum = math.Max(maxSum, sums[i])
		}
		sort.Slice(pts, func(i, j int) bool {
			return pts[i].age < pts[j].age
		})
		lines[class] = pts
	}
	if minAge > maxAge {
		minAge, maxAge = 0, 1
	}

	var ch obeviz.Chart[float64, float64]
	ch.Title = "Line Plot for Obesity by Age"
	ch.Width = chartWidth
	ch.Height = chartHeight
	ch.Padding = obeviz.Padding{Top: 50, Right: 170, Bottom: 60, Left: 70}
	ch.Legend.Orient = obeviz.OrientRight

	var (
		xs = obeviz.NumberScaler(obeviz.NumberDomain(minAge, maxAge), obeviz.NewRange(0, ch.DrawingWidth()))
		ys = obeviz.InvertScaler(obeviz.NumberDomain(0, maxSum), obeviz.NewRange(0, ch.DrawingHeight()))
	)
	ch.Bottom = obeviz.NumberAxis{
		Label:          "Age",
		Orientation:    obeviz.OrientBottom,
		Ticks:          8,
		Scaler:         xs,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	ch.Left = obeviz.NumberAxis{
		Label:          "Counts",
		Orientation:    obeviz.OrientLeft,
		Ticks:          5,
		Scaler:         ys,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}

	var set []obeviz.Data
	for i, class := range classes {
		color := obeviz.BuRd5.Color(i)
		serie := obeviz.Serie[float64, float64]{
			Title: class,
			Color: color,
			X:     xs,
			Y:     ys,
			Renderer: obeviz.LinearRenderer[float64, float64]{
				Color: color,
				Point: obeviz.GetCircle,
			},
		}
		for _, pt := range lines[class] {
			serie.Points = append(serie.Points, obeviz.NumberPoint(pt.age, pt.sum))
		}
		set = append(set, serie)
		ch.Legend.Entries = append(ch.Legend.Entries, obeviz.LegendEntry{
			Label: class,
			Color: color,
		})
	}

	var buf bytes.Buffer
	ch.Render(&buf, set...)
	return template.HTML(buf.String()), nil
}

// buildPie shows the gender split of the whole dataset. The filter variable
// only picks the intermediate grouping, the slices always sum per gender, so
// selecting the gender itself falls back to grouping by obesity class.
func buildPie(ds *frame.Dataset, filter string) (template.HTML, error) {
	title := indexLabels.Get(filter)
	if filter == "gender" {
		filter = "nobeyesdad"
		title = indexLabels.Get(filter)
	}
	wide, err := frame.Aggregate(ds, filter, "gender")
	if err != nil {
		return "", err
	}
	tidy, err := frame.Reshape(wide, []string{filter}, "gender", "counts")
	if err != nil {
		return "", err
	}
	genders, err := tidy.Levels("gender")
	if err != nil {
		return "", err
	}

	var ch obeviz.Chart[string, float64]
	ch.Title = obeviz.BreakText(fmt.Sprintf("Pie Chart for %s by Gender", title), 60)
	ch.Width = chartWidth
	ch.Height = chartHeight
	ch.Padding = obeviz.Padding{Top: 50, Right: 170, Bottom: 20, Left: 70}
	ch.Legend.Orient = obeviz.OrientRight

	var (
		dw = ch.DrawingWidth()
		dh = ch.DrawingHeight()
		xs = obeviz.StringScaler(genders, obeviz.NewRange(0, dw))
		ys = obeviz.NumberScaler(obeviz.NumberDomain(0, 1), obeviz.NewRange(0, dh))
	)
	serie := obeviz.Serie[string, float64]{
		X: xs,
		Y: ys,
		Renderer: obeviz.PieRenderer[string, float64]{
			Fill:        obeviz.BuRd5,
			OuterRadius: math.Min(dw, dh) * 0.45,
		},
	}
	for i, gender := range genders {
		sub, err := tidy.Filter("gender", gender)
		if err != nil {
			return "", err
		}
		total, err := sub.Sum("counts")
		if err != nil {
			return "", err
		}
		serie.Points = append(serie.Points, obeviz.CategoryPoint(gender, total))
		ch.Legend.Entries = append(ch.Legend.Entries, obeviz.LegendEntry{
			Label: gender,
			Color: obeviz.BuRd5.Color(i),
		})
	}

	var buf bytes.Buffer
	ch.Render(&buf, serie)
	return template.HTML(buf.String()), nil
}
