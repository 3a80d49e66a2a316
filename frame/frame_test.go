package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `gender,age_group,nobeyesdad,ncp
Male,18-25,Normal Weight,3
Female,18-25,Normal Weight,3
Female,26-35,Overweight,1
Male,18-25,Overweight,3
Female,18-25,Normal Weight,1
`

func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	return ds
}

func TestReadSchema(t *testing.T) {
	_, err := Read(strings.NewReader(sample), "gender", "ncp")
	require.NoError(t, err)

	_, err = Read(strings.NewReader(sample), "gender", "smoke")
	require.Error(t, err)
	var serr SchemaError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "smoke", serr.Column)
}

func TestDatasetLevels(t *testing.T) {
	ds := sampleDataset(t)
	require.Equal(t, 5, ds.Len())

	levels, err := ds.Levels("nobeyesdad")
	require.NoError(t, err)
	require.Equal(t, []string{"Normal Weight", "Overweight"}, levels)

	_, err = ds.Levels("missing")
	require.Error(t, err)
}

func TestAggregateWide(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)

	// 2 classes x 2 genders, spread over the 2 observed ncp levels
	require.Equal(t, 4, wide.Len())
	require.Equal(t, []string{"nobeyesdad", "gender"}, wide.LabelNames())
	require.Equal(t, []string{"3", "1"}, wide.ValueNames())
	require.Equal(t, "ncp", wide.Variable())

	classes, err := wide.Labels("nobeyesdad")
	require.NoError(t, err)
	require.Equal(t, []string{"Normal Weight", "Normal Weight", "Overweight", "Overweight"}, classes)

	threes, err := wide.Numbers("3")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 0}, threes)

	// every dataset row lands in exactly one cell
	var total float64
	for _, n := range wide.ValueNames() {
		s, err := wide.Sum(n)
		require.NoError(t, err)
		total += s
	}
	require.Equal(t, float64(ds.Len()), total)
}

func TestAggregateNeedsTwoColumns(t *testing.T) {
	ds := sampleDataset(t)
	_, err := Aggregate(ds, "gender")
	require.Error(t, err)
}

func TestAggregateEmptyInput(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)

	none, err := tidy.Filter("nobeyesdad", "Obesity Type III")
	require.NoError(t, err)
	out, err := AggregateByWeight(none, []string{"nobeyesdad", "gender"}, "counts")
	require.NoError(t, err)
	require.Zero(t, out.Len())
}

func TestAggregateDeterministic(t *testing.T) {
	ds := sampleDataset(t)
	a, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	b, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestReshape(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)

	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)
	require.Equal(t, 8, tidy.Len())
	require.Equal(t, []string{"nobeyesdad", "gender", "ncp"}, tidy.LabelNames())
	require.Equal(t, []string{"counts"}, tidy.ValueNames())
	require.Empty(t, tidy.Variable())

	sum, err := tidy.Sum("counts")
	require.NoError(t, err)
	require.Equal(t, float64(ds.Len()), sum)
}

func TestReshapeErrors(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)

	_, err = Reshape(wide, []string{"nobeyesdad", "age_group"}, "ncp", "counts")
	var serr SchemaError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "age_group", serr.Column)

	_, err = Reshape(wide, []string{"nobeyesdad", "gender"}, "smoke", "counts")
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)

	sub, err := tidy.Filter("nobeyesdad", "Overweight")
	require.NoError(t, err)
	require.Equal(t, 4, sub.Len())

	none, err := tidy.Filter("nobeyesdad", "Obesity Type I")
	require.NoError(t, err)
	require.Zero(t, none.Len())
}

func TestSortBy(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)

	sorted, err := wide.SortBy("gender")
	require.NoError(t, err)
	genders, err := sorted.Labels("gender")
	require.NoError(t, err)
	require.Equal(t, []string{"Female", "Female", "Male", "Male"}, genders)

	// stable: class order preserved inside each gender
	classes, err := sorted.Labels("nobeyesdad")
	require.NoError(t, err)
	require.Equal(t, []string{"Normal Weight", "Overweight", "Normal Weight", "Overweight"}, classes)
}

func TestNormalizeRows(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)

	norm, err := NormalizeRows(tidy, []string{"nobeyesdad"}, "counts")
	require.NoError(t, err)
	require.Equal(t, tidy.Len(), norm.Len())

	classes, err := norm.Labels("nobeyesdad")
	require.NoError(t, err)
	counts, err := norm.Numbers("counts")
	require.NoError(t, err)
	sums := make(map[string]float64)
	for i, c := range classes {
		sums[c] += counts[i]
	}
	for c, s := range sums {
		require.InDelta(t, 1, s, 1e-9, "class %s", c)
	}
}

func TestNormalizeRowsZeroGroup(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "gender", "nobeyesdad", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"gender", "nobeyesdad"}, "ncp", "counts")
	require.NoError(t, err)
	// grouping by all three keys makes every zero-filled cell its own group,
	// which must stay 0 instead of turning into NaN
	norm, err := NormalizeRows(tidy, []string{"gender", "nobeyesdad", "ncp"}, "counts")
	require.NoError(t, err)
	counts, err := norm.Numbers("counts")
	require.NoError(t, err)
	for _, v := range counts {
		require.False(t, v != v, "NaN in normalized counts")
		require.Contains(t, []float64{0, 1}, v)
	}
}

func TestNormalizeMargin(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)

	margin, err := NormalizeMargin(tidy, []string{"nobeyesdad"}, "counts")
	require.NoError(t, err)
	require.Equal(t, 2, margin.Len())

	total, err := margin.Sum("counts")
	require.NoError(t, err)
	require.InDelta(t, 1, total, 1e-9)

	counts, err := margin.Numbers("counts")
	require.NoError(t, err)
	require.InDelta(t, 3.0/5.0, counts[0], 1e-9)
	require.InDelta(t, 2.0/5.0, counts[1], 1e-9)
}

func TestAggregateByWeight(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	tidy, err := Reshape(wide, []string{"nobeyesdad", "gender"}, "ncp", "counts")
	require.NoError(t, err)

	again, err := AggregateByWeight(tidy, []string{"nobeyesdad", "gender"}, "counts")
	require.NoError(t, err)
	require.Equal(t, []string{"nobeyesdad"}, again.LabelNames())
	require.Equal(t, "gender", again.Variable())

	total := 0.0
	for _, n := range again.ValueNames() {
		s, err := again.Sum(n)
		require.NoError(t, err)
		total += s
	}
	require.Equal(t, float64(ds.Len()), total)
}

func TestSumAcross(t *testing.T) {
	ds := sampleDataset(t)
	wide, err := Aggregate(ds, "nobeyesdad", "gender", "ncp")
	require.NoError(t, err)
	sums := wide.SumAcross()
	require.Len(t, sums, wide.Len())
	var total float64
	for _, v := range sums {
		total += v
	}
	require.Equal(t, float64(ds.Len()), total)
}
