package dash

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/obeviz/obeviz/frame"
)

const testCSV = `gender,age,age_group,nobeyesdad,favc,caec,fcvc,ncp,ch2o,smoke,calc,scc,faf,tue,mtrans,family_history_with_overweight,hypertension,heart_disease,diabetes
Male,21,18-25,Insufficient Weight,yes,Sometimes,2,3,2,no,no,no,1,1,Public_Transportation,yes,no,no,no
Female,23,18-25,Insufficient Weight,no,Frequently,3,3,2,no,Sometimes,no,0,2,Walking,no,no,no,no
Male,27,26-35,Normal Weight,yes,Sometimes,2,3,1,yes,Sometimes,no,2,1,Automobile,yes,yes,no,no
Female,30,26-35,Normal Weight,yes,Sometimes,3,1,2,no,no,yes,1,0,Public_Transportation,yes,no,no,yes
Male,45,36-45,Overweight Level I,yes,Always,2,3,3,no,Frequently,no,0,1,Automobile,yes,yes,yes,no
Female,38,36-45,Obesity Type I,yes,Sometimes,2,4,2,no,Sometimes,no,1,2,Public_Transportation,yes,no,no,no
Male,22,18-25,Normal Weight,no,no,3,3,2,no,no,no,3,0,Bike,no,no,no,no
Female,26,26-35,Insufficient Weight,no,Sometimes,3,3,2,no,no,no,2,1,Walking,no,no,no,no
`

func testServer(t *testing.T) http.Handler {
	t.Helper()
	ds, err := frame.Read(strings.NewReader(testCSV), RequiredColumns...)
	require.NoError(t, err)
	srv, err := NewServer(ds, zerolog.Nop())
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexDefaults(t *testing.T) {
	h := testServer(t)
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<svg")
	require.Contains(t, body, "Heatmap for Insufficient Weight")
	require.Contains(t, body, "Number of main meals")
	require.Contains(t, body, `value="ncp" selected`)
	// the line plot marks every plotted point
	require.Contains(t, body, "<circle")
}

func TestIndexSelection(t *testing.T) {
	h := testServer(t)
	rec := post(t, h, "/", url.Values{
		"dropdown-variable": {"gender"},
		"dropdown-obesity":  {"Normal Weight"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// the gender filter drops the redundant gender split
	require.Contains(t, body, "Bar Plot for Gender by Normal Weight")
	require.Contains(t, body, `value="gender" selected`)
}

func TestIndexRejectsUnknownVariable(t *testing.T) {
	h := testServer(t)
	rec := post(t, h, "/", url.Values{"dropdown-variable": {"weight"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/", url.Values{"dropdown-obesity": {"Skinny"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexNotFound(t *testing.T) {
	h := testServer(t)
	rec := get(t, h, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPage2(t *testing.T) {
	h := testServer(t)
	rec := get(t, h, "/page2.html")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<svg")
	require.Contains(t, body, "Donut Chart for Transportation used")
	require.Contains(t, body, `value="mtrans" selected`)

	rec = post(t, h, "/page2.html", url.Values{
		"dropdown-categorical": {"smoke"},
		"dropdown-binary":      {"favc"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Donut Chart for Smoking habit")
}

func TestDonutClassOrder(t *testing.T) {
	ds, err := frame.Read(strings.NewReader(testCSV), RequiredColumns...)
	require.NoError(t, err)

	donut, err := buildDonut(ds, "mtrans", "gender")
	require.NoError(t, err)

	// wedges run in alphabetical class order inside each gender group, even
	// though the dataset sees Overweight Level I before Obesity Type I
	body := string(donut)
	require.Less(t,
		strings.Index(body, "Obesity Type I"),
		strings.Index(body, "Overweight Level I"))
}

func TestPage3(t *testing.T) {
	h := testServer(t)
	rec := get(t, h, "/page3.html")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<svg")
	require.Contains(t, body, "Sankey diagram for High blood pressure")
	require.Contains(t, body, "Crosstab for High blood pressure")

	rec = post(t, h, "/page3.html", url.Values{"dropdown-variable": {"diabetes"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sankey diagram for Diabetes")
}

func TestBuildersDirect(t *testing.T) {
	ds, err := frame.Read(strings.NewReader(testCSV), RequiredColumns...)
	require.NoError(t, err)

	for _, variable := range indexVariables {
		_, err := buildHeatmap(ds, variable, "Normal Weight")
		require.NoError(t, err, "heatmap %s", variable)
		_, err = buildBar(ds, variable, "Normal Weight")
		require.NoError(t, err, "bar %s", variable)
		_, err = buildLine(ds, variable)
		require.NoError(t, err, "line %s", variable)
		_, err = buildPie(ds, variable)
		require.NoError(t, err, "pie %s", variable)
	}
	for _, variable := range page3Variables {
		_, err := buildSankey(ds, variable)
		require.NoError(t, err, "sankey %s", variable)
		_, err = buildCrosstab(ds, variable)
		require.NoError(t, err, "crosstab %s", variable)
	}
	_, err = buildDonut(ds, "mtrans", "gender")
	require.NoError(t, err)
}
