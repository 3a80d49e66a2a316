package frame

import "fmt"

// Reshape melts a wide table back into tidy form: one row per combination of
// the fixed columns and the variable's levels, with a single counts column.
// The fixed columns must exist in the wide table and the variable name must
// match the column the table was spread from.
func Reshape(t *Table, fixed []string, variable, value string) (*Table, error) {
	if variable != t.variable {
		return nil, fmt.Errorf("reshape: table was spread from %q, not %q", t.variable, variable)
	}
	for _, n := range fixed {
		if _, ok := t.labels[n]; !ok {
			return nil, SchemaError{Column: n}
		}
	}
	rows := t.rows * len(t.valueNames)
	out := Table{
		labelNames: append(append([]string(nil), fixed...), variable),
		valueNames: []string{value},
		labels:     make(map[string][]string),
		values:     make(map[string][]float64),
		rows:       rows,
	}
	for _, n := range out.labelNames {
		out.labels[n] = make([]string, 0, rows)
	}
	out.values[value] = make([]float64, 0, rows)

	for _, level := range t.valueNames {
		for r := 0; r < t.rows; r++ {
			for _, n := range fixed {
				out.labels[n] = append(out.labels[n], t.labels[n][r])
			}
			out.labels[variable] = append(out.labels[variable], level)
			out.values[value] = append(out.values[value], t.values[level][r])
		}
	}
	return &out, nil
}
