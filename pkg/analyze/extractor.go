package analyze

import (
	"math"
	"strings"

	"github.com/chits-nema/Nestify/pkg/board"
)

// Extractor scores individual pins against the vocabulary.
type Extractor struct {
	vocab *Vocabulary
	rules []overrideRule
}

// NewExtractor creates an Extractor over the given vocabulary.
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab, rules: overrideRules()}
}

// Extract scores one pin. Categories without any trigger hit are
// absent from the result. All values stay within [0,1].
func (e *Extractor) Extract(pin board.Pin) FeatureVector {
	text := pin.Text()
	vec := make(FeatureVector)

	for _, cat := range e.vocab.Categories {
		hits := 0
		for _, trigger := range cat.Triggers {
			if strings.Contains(text, trigger) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		vec[cat.Name] = baseConfidence(hits, len(cat.Triggers))
	}

	for _, rule := range e.rules {
		if rule.applies(text) {
			rule.apply(text, vec, e.vocab)
		}
	}

	return vec
}

// baseConfidence maps a distinct-trigger hit count to a confidence via
// a concave transform: pin captions are short, so a handful of hits
// already signals strong intent.
func baseConfidence(hits, total int) float64 {
	ratio := float64(hits) / float64(total)
	return math.Min(1.0, math.Sqrt(ratio)*1.8)
}

// overrideRule is one deterministic adjustment applied after the base
// transform. Rules run in a fixed order; each only raises a category
// or scales one down, never zeroes independent evidence.
type overrideRule struct {
	name    string
	applies func(text string) bool
	apply   func(text string, vec FeatureVector, vocab *Vocabulary)
}

var (
	balconyTokens       = []string{"balcony", "balkon"}
	apartmentTypeTokens = []string{"apartment", "flat", "loft", "studio", "condo"}
	strongHouseTokens   = []string{"farmhouse", "cottage", "cabin", "villa", "colonial"}
	rusticSignalTokens  = []string{"cottage", "farmhouse", "countryside", "cozy", "rustic", "charm"}
	historicTokens      = []string{"colonial", "16th century", "17th century", "18th century", "historic"}
	interiorTokens      = []string{"interior", "bedroom", "living room", "kitchen", "bathroom", "hallway", "room decor"}
	exteriorTokens      = []string{"exterior", "facade", "garden", "yard", "balcony", "terrace", "patio", "driveway"}
)

func containsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

func countDistinct(text string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			n++
		}
	}
	return n
}

func raiseTo(vec FeatureVector, cat string, floor float64) {
	if vec[cat] < floor {
		vec[cat] = floor
	}
}

func scaleExisting(vec FeatureVector, cat string, factor float64) {
	if cur, ok := vec[cat]; ok {
		vec[cat] = cur * factor
	}
}

func overrideRules() []overrideRule {
	return []overrideRule{
		{
			name:    "balcony implies apartment",
			applies: func(t string) bool { return containsAny(t, balconyTokens) },
			apply: func(_ string, vec FeatureVector, _ *Vocabulary) {
				raiseTo(vec, CatApartment, 0.8)
				scaleExisting(vec, CatHouse, 0.3)
			},
		},
		{
			name:    "explicit apartment type",
			applies: func(t string) bool { return containsAny(t, apartmentTypeTokens) },
			apply: func(_ string, vec FeatureVector, _ *Vocabulary) {
				raiseTo(vec, CatApartment, 0.9)
			},
		},
		{
			name:    "strong standalone house",
			applies: func(t string) bool { return containsAny(t, strongHouseTokens) },
			apply: func(_ string, vec FeatureVector, _ *Vocabulary) {
				raiseTo(vec, CatHouse, 0.85)
			},
		},
		{
			name:    "rustic co-occurrence",
			applies: func(t string) bool { return countDistinct(t, rusticSignalTokens) >= 2 },
			apply: func(_ string, vec FeatureVector, _ *Vocabulary) {
				raiseTo(vec, CatRustic, 0.85)
				raiseTo(vec, CatHouse, 0.75)
			},
		},
		{
			name:    "historic period",
			applies: func(t string) bool { return containsAny(t, historicTokens) },
			apply: func(_ string, vec FeatureVector, _ *Vocabulary) {
				raiseTo(vec, CatVintage, 0.85)
				raiseTo(vec, CatHouse, 0.75)
			},
		},
		{
			name: "interior-only boost",
			applies: func(t string) bool {
				return containsAny(t, interiorTokens) && !containsAny(t, exteriorTokens)
			},
			apply: func(_ string, vec FeatureVector, vocab *Vocabulary) {
				for cat, conf := range vec {
					if vocab.IsStyle(cat) {
						vec[cat] = math.Min(1.0, conf*1.2)
					}
				}
			},
		},
	}
}
