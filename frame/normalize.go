package frame

import "strings"

// NormalizeRows divides a value column by the sum of its group, where a
// group is a combination of the key columns. Groups that sum to zero keep
// their zeros instead of producing NaN.
func NormalizeRows(t *Table, keys []string, value string) (*Table, error) {
	groups, err := groupKeys(t, keys)
	if err != nil {
		return nil, err
	}
	vs, err := t.Numbers(value)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64)
	for i, g := range groups {
		sums[g] += vs[i]
	}
	out := t.subset(identity(t.rows))
	col := out.values[value]
	for i, g := range groups {
		if s := sums[g]; s != 0 {
			col[i] = vs[i] / s
		} else {
			col[i] = 0
		}
	}
	return out, nil
}

// NormalizeMargin collapses the table to one row per group and reports each
// group's share of the grand total.
func NormalizeMargin(t *Table, keys []string, value string) (*Table, error) {
	groups, err := groupKeys(t, keys)
	if err != nil {
		return nil, err
	}
	vs, err := t.Numbers(value)
	if err != nil {
		return nil, err
	}
	var (
		sums  = make(map[string]float64)
		order []string
		grand float64
	)
	for i, g := range groups {
		if _, ok := sums[g]; !ok {
			order = append(order, g)
		}
		sums[g] += vs[i]
		grand += vs[i]
	}
	out := Table{
		labelNames: append([]string(nil), keys...),
		valueNames: []string{value},
		labels:     make(map[string][]string),
		values:     make(map[string][]float64),
		rows:       len(order),
	}
	for _, n := range keys {
		out.labels[n] = make([]string, len(order))
	}
	col := make([]float64, len(order))
	for i, g := range order {
		parts := strings.Split(g, keySep)
		for j, n := range keys {
			out.labels[n][i] = parts[j]
		}
		if grand != 0 {
			col[i] = sums[g] / grand
		}
	}
	out.values[value] = col
	return &out, nil
}

func groupKeys(t *Table, keys []string) ([]string, error) {
	cols := make([][]string, len(keys))
	for i, n := range keys {
		vs, err := t.Labels(n)
		if err != nil {
			return nil, err
		}
		cols[i] = vs
	}
	groups := make([]string, t.rows)
	parts := make([]string, len(keys))
	for r := 0; r < t.rows; r++ {
		for i := range cols {
			parts[i] = cols[i][r]
		}
		groups[r] = strings.Join(parts, keySep)
	}
	return groups, nil
}

func identity(n int) []int {
	ix := make([]int, n)
	for i := range ix {
		ix[i] = i
	}
	return ix
}
