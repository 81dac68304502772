package formatting

import "strings"

// labels maps token keys (lowercase, underscore-delimited) to the labels
// shown on buttons and in profile text.
var labels = map[string]string{
	"jc":                "Junior College",
	"gp":                "General Paper",
	"emath":             "E-Math",
	"amath":             "A-Math",
	"ib_math":           "IB Math",
	"ib_english":        "IB English",
	"igcse":             "IGCSE",
	"sat":               "SAT",
	"ielts":             "IELTS",
	"toefl":             "TOEFL",
	"weekday_morning":   "Weekday mornings",
	"weekday_afternoon": "Weekday afternoons",
	"weekday_evening":   "Weekday evenings",
	"weekend_morning":   "Weekend mornings",
	"weekend_afternoon": "Weekend afternoons",
	"weekend_evening":   "Weekend evenings",
	"northeast":         "North-East",
	"northwest":         "North-West",
	"moe":               "MOE-trained teacher",
	"alevel":            "A-Levels",
	"undergrad":         "Undergraduate",
}

// Label renders a token key as display text.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	if key == "" {
		return ""
	}
	key = strings.ReplaceAll(key, "_", " ")
	return strings.ToUpper(key[:1]) + key[1:]
}
