package immo

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Umlaut transliteration required by the search service.
var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
)

// Transliterate rewrites German umlauts the way the search service
// expects them.
func Transliterate(text string) string {
	if text == "" {
		return text
	}
	return umlauts.Replace(text)
}

// cityRegions maps known city spellings (lowercased, transliterated)
// to their Bundesland.
var cityRegions = map[string]string{
	"muenchen":    "Bayern",
	"munich":      "Bayern",
	"nuernberg":   "Bayern",
	"augsburg":    "Bayern",
	"berlin":      "Berlin",
	"hamburg":     "Hamburg",
	"koeln":       "Nordrhein-Westfalen",
	"cologne":     "Nordrhein-Westfalen",
	"duesseldorf": "Nordrhein-Westfalen",
	"dortmund":    "Nordrhein-Westfalen",
	"frankfurt":   "Hessen",
	"stuttgart":   "Baden-Wuerttemberg",
	"karlsruhe":   "Baden-Wuerttemberg",
	"leipzig":     "Sachsen",
	"dresden":     "Sachsen",
	"hannover":    "Niedersachsen",
	"bremen":      "Bremen",
}

const defaultRegion = "Bayern"

// ResolveRegion maps a user-supplied city name to its region. Exact
// lookup first (after lowercasing and transliteration), then a fuzzy
// pass so typos and spelling variants still resolve. Unknown cities
// fall back to Bayern, matching the service's default market.
func ResolveRegion(city string) string {
	key := strings.ToLower(Transliterate(strings.TrimSpace(city)))
	if key == "" {
		return defaultRegion
	}
	if region, ok := cityRegions[key]; ok {
		return region
	}

	bestScore := 0.0
	bestRegion := defaultRegion
	for known, region := range cityRegions {
		score := similarity(key, known)
		if score > bestScore {
			bestScore = score
			bestRegion = region
		}
	}
	if bestScore >= 0.75 {
		return bestRegion
	}
	return defaultRegion
}

// similarity is a normalized Levenshtein score in [0,1].
func similarity(a, b string) float64 {
	dist := levenshtein.Distance(a, b, nil)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}
