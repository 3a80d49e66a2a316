package frame

import (
	"fmt"
	"strings"
)

const keySep = "\x1f"

// Aggregate counts dataset rows grouped by the given columns and spreads the
// last column into one value column per level. The output has one row for
// every combination of the leading columns' observed levels, in first-seen
// order, with zero for combinations never observed. At least two columns are
// required.
func Aggregate(ds *Dataset, cols ...string) (*Table, error) {
	if len(cols) < 2 {
		return nil, fmt.Errorf("aggregate: need at least 2 columns, got %d", len(cols))
	}
	var (
		fixed    = cols[:len(cols)-1]
		variable = cols[len(cols)-1]
		src      = make([][]string, len(cols))
	)
	for i, c := range cols {
		vs, err := ds.Column(c)
		if err != nil {
			return nil, err
		}
		src[i] = vs
	}
	counts := make(map[string]float64)
	for r := 0; r < ds.Len(); r++ {
		parts := make([]string, len(cols))
		for i := range src {
			parts[i] = src[i][r]
		}
		counts[strings.Join(parts, keySep)]++
	}

	levels := make([][]string, len(fixed))
	for i := range fixed {
		levels[i] = uniques(src[i])
	}
	spread := uniques(src[len(src)-1])

	return buildWide(fixed, levels, variable, spread, counts), nil
}

// AggregateByWeight groups an already aggregated table by label columns and
// sums a numeric column instead of counting, spreading the last grouping
// column like Aggregate does.
func AggregateByWeight(t *Table, cols []string, weight string) (*Table, error) {
	if len(cols) < 2 {
		return nil, fmt.Errorf("aggregate: need at least 2 columns, got %d", len(cols))
	}
	var (
		fixed    = cols[:len(cols)-1]
		variable = cols[len(cols)-1]
		src      = make([][]string, len(cols))
	)
	for i, c := range cols {
		vs, err := t.Labels(c)
		if err != nil {
			return nil, err
		}
		src[i] = vs
	}
	ws, err := t.Numbers(weight)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]float64)
	for r := 0; r < t.Len(); r++ {
		parts := make([]string, len(cols))
		for i := range src {
			parts[i] = src[i][r]
		}
		counts[strings.Join(parts, keySep)] += ws[r]
	}

	levels := make([][]string, len(fixed))
	for i := range fixed {
		levels[i] = uniques(src[i])
	}
	spread := uniques(src[len(src)-1])

	return buildWide(fixed, levels, variable, spread, counts), nil
}

func buildWide(fixed []string, levels [][]string, variable string, spread []string, counts map[string]float64) *Table {
	rows := 1
	for _, lv := range levels {
		rows *= len(lv)
	}
	if len(levels) == 0 || len(spread) == 0 {
		rows = 0
	}
	out := Table{
		labelNames: append([]string(nil), fixed...),
		valueNames: append([]string(nil), spread...),
		labels:     make(map[string][]string),
		values:     make(map[string][]float64),
		variable:   variable,
		rows:       rows,
	}
	for _, n := range fixed {
		out.labels[n] = make([]string, rows)
	}
	for _, n := range spread {
		out.values[n] = make([]float64, rows)
	}

	combo := make([]int, len(levels))
	for r := 0; r < rows; r++ {
		parts := make([]string, len(levels))
		for i, lv := range levels {
			parts[i] = lv[combo[i]]
			out.labels[fixed[i]][r] = lv[combo[i]]
		}
		prefix := strings.Join(parts, keySep)
		for _, sp := range spread {
			out.values[sp][r] = counts[prefix+keySep+sp]
		}
		for i := len(combo) - 1; i >= 0; i-- {
			combo[i]++
			if combo[i] < len(levels[i]) {
				break
			}
			combo[i] = 0
		}
	}
	return &out
}
