package dash

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/obeviz/obeviz"
	"github.com/obeviz/obeviz/frame"
)

// flowColumns are the risk-factor columns the third page reasons about,
// counted once and regrouped per chart.
var flowColumns = []string{
	"gender",
	"family_history_with_overweight",
	"hypertension",
	"heart_disease",
	"diabetes",
	"nobeyesdad",
	"age_group",
}

func flowCounts(ds *frame.Dataset) (*frame.Table, error) {
	wide, err := frame.Aggregate(ds, flowColumns...)
	if err != nil {
		return nil, err
	}
	return frame.Reshape(wide, flowColumns[:len(flowColumns)-1], "age_group", "counts")
}

// buildSankey chains three regroupings of the risk-factor counts into flow
// links: filter level to gender, gender to age group, age group to obesity
// class.
func buildSankey(ds *frame.Dataset, filter string) (template.HTML, error) {
	long, err := flowCounts(ds)
	if err != nil {
		return "", err
	}
	var links []obeviz.SankeyLink
	for _, pair := range [][2]string{
		{filter, "gender"},
		{"gender", "age_group"},
		{"age_group", "nobeyesdad"},
	} {
		part, err := frame.AggregateByWeight(long, []string{pair[0], pair[1]}, "counts")
		if err != nil {
			return "", err
		}
		ls, err := flowLinks(part, pair[0])
		if err != nil {
			return "", err
		}
		links = append(links, ls...)
	}

	layers := make([][]string, 0, 4)
	for _, col := range []string{filter, "gender", "age_group", "nobeyesdad"} {
		levels, err := long.Levels(col)
		if err != nil {
			return "", err
		}
		sort.Strings(levels)
		layers = append(layers, levels)
	}

	title := fmt.Sprintf("Sankey diagram for %s", page3Labels.Get(filter))
	sankey := obeviz.NewSankey(obeviz.BreakText(title, 60))
	sankey.Layers = layers
	sankey.Headers = []string{
		page3Labels.Get(filter),
		"Gender",
		"Age group",
		"Obesity class",
	}
	sankey.Links = links

	var buf bytes.Buffer
	if err := sankey.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func flowLinks(t *frame.Table, label string) ([]obeviz.SankeyLink, error) {
	sorted, err := t.SortBy(label)
	if err != nil {
		return nil, err
	}
	var (
		sources, _ = sorted.Labels(label)
		targets    = append([]string(nil), sorted.ValueNames()...)
		links      []obeviz.SankeyLink
	)
	sort.Strings(targets)
	for r := 0; r < sorted.Len(); r++ {
		for _, target := range targets {
			vs, err := sorted.Numbers(target)
			if err != nil {
				return nil, err
			}
			if vs[r] == 0 {
				continue
			}
			links = append(links, obeviz.SankeyLink{
				Source: sources[r],
				Target: target,
				Value:  vs[r],
			})
		}
	}
	return links, nil
}

// buildCrosstab shows, per filter level, the row-normalized split across
// obesity classes next to the level's share of the grand total.
func buildCrosstab(ds *frame.Dataset, filter string) (template.HTML, error) {
	long, err := flowCounts(ds)
	if err != nil {
		return "", err
	}
	pair, err := frame.AggregateByWeight(long, []string{filter, "nobeyesdad"}, "counts")
	if err != nil {
		return "", err
	}
	tidy, err := frame.Reshape(pair, []string{filter}, "nobeyesdad", "counts")
	if err != nil {
		return "", err
	}
	norm, err := frame.NormalizeRows(tidy, []string{filter}, "counts")
	if err != nil {
		return "", err
	}
	margin, err := frame.NormalizeMargin(tidy, []string{filter}, "counts")
	if err != nil {
		return "", err
	}

	categories, err := tidy.Levels("nobeyesdad")
	if err != nil {
		return "", err
	}
	sort.Strings(categories)
	levels, err := tidy.Levels(filter)
	if err != nil {
		return "", err
	}
	sort.Strings(levels)

	shares := make(map[string]float64)
	var (
		nls, _ = norm.Labels(filter)
		ncs, _ = norm.Labels("nobeyesdad")
		nvs, _ = norm.Numbers("counts")
	)
	for i := range nvs {
		shares[nls[i]+"/"+ncs[i]] = nvs[i]
	}
	totals := make(map[string]float64)
	var (
		mls, _ = margin.Labels(filter)
		mvs, _ = margin.Numbers("counts")
	)
	for i := range mvs {
		totals[mls[i]] = mvs[i]
	}

	title := fmt.Sprintf("Crosstab for %s", page3Labels.Get(filter))
	ct := obeviz.NewCrosstab(obeviz.BreakText(title, 60))
	ct.Categories = categories
	for _, lv := range levels {
		row := obeviz.CrosstabRow{
			Label: lv,
			Total: totals[lv],
		}
		for _, cat := range categories {
			row.Parts = append(row.Parts, shares[lv+"/"+cat])
		}
		ct.Rows = append(ct.Rows, row)
	}

	var buf bytes.Buffer
	if err := ct.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
