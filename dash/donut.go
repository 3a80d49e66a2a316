package dash

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/obeviz/obeviz"
	"github.com/obeviz/obeviz/frame"
)

// buildDonut counts rows by obesity class, the binary variable and the
// filter variable. One outer wedge per (class, binary level) pair, coloured
// by the binary level, with nested bars for the filter categories.
func buildDonut(ds *frame.Dataset, filter, binary string) (template.HTML, error) {
	wide, err := frame.Aggregate(ds, "nobeyesdad", binary, filter)
	if err != nil {
		return "", err
	}
	// class order first, then the binary split; the stable sort keeps the
	// classes ordered inside each wedge group
	wide, err = wide.SortBy("nobeyesdad")
	if err != nil {
		return "", err
	}
	wide, err = wide.SortBy(binary)
	if err != nil {
		return "", err
	}
	categories, err := ds.Levels(filter)
	if err != nil {
		return "", err
	}
	sort.Strings(categories)

	title := fmt.Sprintf("Donut Chart for %s by %s", page2Labels.Get(filter), page2Labels.Get(binary))
	donut := obeviz.NewDonut(obeviz.BreakText(title, 60))
	donut.Categories = categories

	var (
		classes, _ = wide.Labels("nobeyesdad")
		groups, _  = wide.Labels(binary)
	)
	for r := 0; r < wide.Len(); r++ {
		row := obeviz.DonutRow{
			Label: classes[r],
			Group: groups[r],
		}
		for _, cat := range categories {
			cs, err := wide.Numbers(cat)
			if err != nil {
				return "", err
			}
			row.Counts = append(row.Counts, cs[r])
		}
		donut.Rows = append(donut.Rows, row)
	}

	var buf bytes.Buffer
	if err := donut.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
