package frame

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// SchemaError reports a reference to a column the table does not carry. It
// always indicates a caller bug and is never recovered silently.
type SchemaError struct {
	Column string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("column %q not present", e.Column)
}

// Dataset is the immutable survey table, loaded once at startup and shared
// read-only by every request. Column values are materialized as strings at
// load time so transformations never touch the dataframe afterwards.
type Dataset struct {
	names   []string
	columns map[string][]string
	rows    int
}

// Open loads a CSV dataset and validates that every required column is
// present, so schema mistakes surface at startup instead of deep inside a
// chart build.
func Open(path string, required ...string) (*Dataset, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Read(r, required...)
}

func Read(r io.Reader, required ...string) (*Dataset, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, fmt.Errorf("read dataset: %w", df.Err)
	}
	ds := Dataset{
		names:   df.Names(),
		columns: make(map[string][]string),
		rows:    df.Nrow(),
	}
	for _, n := range ds.names {
		ds.columns[n] = df.Col(n).Records()
	}
	for _, n := range required {
		if !ds.Has(n) {
			return nil, SchemaError{Column: n}
		}
	}
	return &ds, nil
}

func (d *Dataset) Len() int {
	return d.rows
}

func (d *Dataset) Names() []string {
	return d.names
}

func (d *Dataset) Has(name string) bool {
	_, ok := d.columns[name]
	return ok
}

func (d *Dataset) Column(name string) ([]string, error) {
	vs, ok := d.columns[name]
	if !ok {
		return nil, SchemaError{Column: name}
	}
	return vs, nil
}

// Levels returns the distinct values of a column in first-seen order.
func (d *Dataset) Levels(name string) ([]string, error) {
	vs, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return uniques(vs), nil
}

func uniques(vs []string) []string {
	var (
		seen = make(map[string]struct{})
		list []string
	)
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		list = append(list, v)
	}
	return list
}
