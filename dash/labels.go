package dash

// Labels maps dataset column names to what the dashboard shows for them.
// Each page carries its own set, a column missing from the set falls back to
// its raw name.
type Labels map[string]string

func (l Labels) Get(name string) string {
	if v, ok := l[name]; ok {
		return v
	}
	return name
}

var indexLabels = Labels{
	"favc":       "Frequent consumption of caloric food",
	"gender":     "Gender",
	"age_group":  "Age group",
	"age":        "Age",
	"caec":       "Eats between meals",
	"fcvc":       "Consumption of vegetables",
	"ncp":        "Number of main meals",
	"ch2o":       "Water consumption",
	"nobeyesdad": "Obesity class",
}

var page2Labels = Labels{
	"smoke":      "Smoking habit",
	"calc":       "Consumption of alcohol",
	"gender":     "Gender",
	"scc":        "Monitors caloric consumption",
	"faf":        "Physical activity",
	"tue":        "Time using technology devices",
	"mtrans":     "Transportation used",
	"nobeyesdad": "Obesity class",
	"age_group":  "Age group",
	"age":        "Age",
}

var page3Labels = Labels{
	"family_history_with_overweight": "Family with overweight",
	"gender":                         "Gender",
	"hypertension":                   "High blood pressure",
	"heart_disease":                  "Heart disease",
	"diabetes":                       "Diabetes",
	"nobeyesdad":                     "Obesity class",
	"age_group":                      "Age group",
	"age":                            "Age",
}

// Dropdown contents per page, in display order.
var (
	indexVariables = []string{"ncp", "favc", "gender", "caec", "fcvc", "ch2o"}
	page2Variables = []string{"mtrans", "smoke", "calc", "scc", "faf", "tue"}
	page2Binaries  = []string{"gender", "favc", "smoke", "scc"}
	page3Variables = []string{
		"hypertension",
		"family_history_with_overweight",
		"heart_disease",
		"diabetes",
	}
)

// RequiredColumns is the dataset schema the dashboard depends on, checked
// once at load time.
var RequiredColumns = []string{
	"gender",
	"age",
	"age_group",
	"nobeyesdad",
	"favc",
	"caec",
	"fcvc",
	"ncp",
	"ch2o",
	"smoke",
	"calc",
	"scc",
	"faf",
	"tue",
	"mtrans",
	"family_history_with_overweight",
	"hypertension",
	"heart_disease",
	"diabetes",
}
