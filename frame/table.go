package frame

import "sort"

// Table is the result of a grouping step: zero or more label columns plus
// one or more numeric columns, all sharing the same row count. A wide table
// remembers which dataset column its value columns were spread from, so a
// later melt can check it is undoing the right pivot.
type Table struct {
	labelNames []string
	valueNames []string
	labels     map[string][]string
	values     map[string][]float64
	variable   string
	rows       int
}

func (t *Table) Len() int {
	return t.rows
}

func (t *Table) LabelNames() []string {
	return t.labelNames
}

func (t *Table) ValueNames() []string {
	return t.valueNames
}

// Variable is the name of the column whose levels became the value columns,
// empty for long tables.
func (t *Table) Variable() string {
	return t.variable
}

func (t *Table) Has(name string) bool {
	if _, ok := t.labels[name]; ok {
		return true
	}
	_, ok := t.values[name]
	return ok
}

func (t *Table) Labels(name string) ([]string, error) {
	vs, ok := t.labels[name]
	if !ok {
		return nil, SchemaError{Column: name}
	}
	return vs, nil
}

func (t *Table) Numbers(name string) ([]float64, error) {
	vs, ok := t.values[name]
	if !ok {
		return nil, SchemaError{Column: name}
	}
	return vs, nil
}

// Levels returns the distinct values of a label column in first-seen order.
func (t *Table) Levels(name string) ([]string, error) {
	vs, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	return uniques(vs), nil
}

// Filter keeps the rows whose label equals the given value. Filtering on an
// unobserved value is not an error and yields an empty table.
func (t *Table) Filter(name, value string) (*Table, error) {
	col, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	var keep []int
	for i, v := range col {
		if v == value {
			keep = append(keep, i)
		}
	}
	return t.subset(keep), nil
}

// SortBy reorders rows by a label column, ascending and stable.
func (t *Table) SortBy(name string) (*Table, error) {
	col, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return col[order[i]] < col[order[j]]
	})
	return t.subset(order), nil
}

func (t *Table) subset(keep []int) *Table {
	sub := Table{
		labelNames: t.labelNames,
		valueNames: t.valueNames,
		labels:     make(map[string][]string),
		values:     make(map[string][]float64),
		variable:   t.variable,
		rows:       len(keep),
	}
	for _, n := range t.labelNames {
		col := make([]string, len(keep))
		for i, k := range keep {
			col[i] = t.labels[n][k]
		}
		sub.labels[n] = col
	}
	for _, n := range t.valueNames {
		col := make([]float64, len(keep))
		for i, k := range keep {
			col[i] = t.values[n][k]
		}
		sub.values[n] = col
	}
	return &sub
}

func (t *Table) Sum(name string) (float64, error) {
	vs, err := t.Numbers(name)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range vs {
		total += v
	}
	return total, nil
}

func (t *Table) Max(name string) (float64, error) {
	vs, err := t.Numbers(name)
	if err != nil {
		return 0, err
	}
	var max float64
	for i, v := range vs {
		if i == 0 || v > max {
			max = v
		}
	}
	return max, nil
}

// SumAcross sums every value column row by row.
func (t *Table) SumAcross() []float64 {
	sums := make([]float64, t.rows)
	for _, n := range t.valueNames {
		for i, v := range t.values[n] {
			sums[i] += v
		}
	}
	return sums
}
