package quizgen

import (
	"math/rand/v2"
	"strings"
)

// predefinedCategories lists the built-in categories per language.
// Only questions generated for these categories feed the topic
// history; custom categories are exempt because their topic space is
// usually too narrow to avoid repeats anyway.
var predefinedCategories = map[string][]string{
	"de": {
		"Geschichte",
		"Geografie",
		"Wissenschaft",
		"Kunst & Kultur",
		"Sport",
		"Musik",
		"Film & Fernsehen",
		"Literatur",
		"Natur & Tiere",
		"Technologie",
		"Politik",
		"Essen & Trinken",
	},
	"en": {
		"History",
		"Geography",
		"Science",
		"Art & Culture",
		"Sports",
		"Music",
		"Film & TV",
		"Literature",
		"Nature & Animals",
		"Technology",
		"Politics",
		"Food & Drink",
	},
}

// PredefinedCategories returns the built-in category list for lang,
// falling back to English for unknown languages.
func PredefinedCategories(lang string) []string {
	if cats, ok := predefinedCategories[lang]; ok {
		out := make([]string, len(cats))
		copy(out, cats)
		return out
	}
	out := make([]string, len(predefinedCategories["en"]))
	copy(out, predefinedCategories["en"])
	return out
}

// RandomCategories picks n distinct built-in categories for lang.
func RandomCategories(lang string, n int) []string {
	cats := PredefinedCategories(lang)
	rand.Shuffle(len(cats), func(i, j int) {
		cats[i], cats[j] = cats[j], cats[i]
	})
	if n > len(cats) {
		n = len(cats)
	}
	return cats[:n]
}

// ShouldIgnoreHistory reports whether category is absent from the
// predefined list, i.e. is a user-defined custom category. Matching
// normalizes case and surrounding whitespace.
func ShouldIgnoreHistory(category string, predefined []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(category))
	for _, p := range predefined {
		if strings.ToLower(strings.TrimSpace(p)) == normalized {
			return false
		}
	}
	return true
}
