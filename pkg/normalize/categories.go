package normalize

import "strings"

// Canonical categories.
const (
	CategoryFood      = "oziq-ovqat"
	CategoryTransport = "transport"
	CategorySalary    = "ish-haqi"
	CategoryDebt      = "qarz"
	CategoryHome      = "uy"
	CategoryHealth    = "salomatlik"
	CategoryOther     = "boshqa"
)

// categoryAliases maps surface words from speech to canonical categories.
var categoryAliases = map[string]string{
	// salary
	"maosh":    CategorySalary,
	"oylik":    CategorySalary,
	"zarplata": CategorySalary,
	"salary":   CategorySalary,
	"ish haqi": CategorySalary,
	"ish-haqi": CategorySalary,
	// food
	"ovqat":      CategoryFood,
	"oziq-ovqat": CategoryFood,
	"yemak":      CategoryFood,
	"еда":        CategoryFood,
	"продукты":   CategoryFood,
	"food":       CategoryFood,
	// transport
	"transport": CategoryTransport,
	"taksi":     CategoryTransport,
	"такси":     CategoryTransport,
	"benzin":    CategoryTransport,
	"yo'l":      CategoryTransport,
	// debt
	"qarz": CategoryDebt,
	"долг": CategoryDebt,
	"debt": CategoryDebt,
	// home
	"uy":         CategoryHome,
	"kommunal":   CategoryHome,
	"коммуналка": CategoryHome,
	// health
	"dori":       CategoryHealth,
	"shifokor":   CategoryHealth,
	"лекарства":  CategoryHealth,
	"salomatlik": CategoryHealth,
	// other
	"boshqa": CategoryOther,
	"other":  CategoryOther,
	"прочее": CategoryOther,
}

// Keyword groups for re-inferring a category from the original utterance.
var (
	foodWords      = []string{"somsa", "osh", "palov", "non", "shashlik", "lag'mon", "kafe", "restoran", "tushlik", "nonushta", "ovqat", "choy"}
	transportWords = []string{"taksi", "avtobus", "metro", "benzin", "yandex", "yo'l"}
	salaryWords    = []string{"oylik", "maosh", "ish haqi", "zarplata"}

	// Verbs signalling money was spent on consumption.
	consumptionVerbs = []string{"yedim", "yedik", "oldim", "sotib", "ketdi", "to'ladim", "потратил", "купил"}
	// Verbs signalling money came in.
	inflowVerbs = []string{"oldim", "keldi", "tushdi", "berishdi", "получил", "пришл", "received", "arrived"}
)

// canonicalCategory resolves a surface category to its canonical form, falling
// back to a keyword scan of the original utterance, then to "boshqa".
func canonicalCategory(surface, utterance string) string {
	key := strings.ToLower(strings.TrimSpace(surface))
	if canonical, ok := categoryAliases[key]; ok {
		return canonical
	}

	lower := strings.ToLower(utterance)
	switch {
	case containsAny(lower, foodWords):
		return CategoryFood
	case containsAny(lower, transportWords):
		return CategoryTransport
	case containsAny(lower, salaryWords):
		return CategorySalary
	}

	return CategoryOther
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
