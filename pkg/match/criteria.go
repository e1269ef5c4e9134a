package match

import (
	"sort"

	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/immo"
)

// StylePreference is one selected style with the confidence it carried
// at selection time.
type StylePreference struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// MatchCriteria is the finalized set of feature intents used to filter
// and score listings. It is never transmitted to the search service.
type MatchCriteria struct {
	PropertyType string            `json:"property_type"`
	Balcony      bool              `json:"balcony"`
	Garden       bool              `json:"garden"`
	Styles       []StylePreference `json:"styles"`
}

const (
	topCategories    = 3
	outdoorThreshold = 0.15
	styleThreshold   = 0.05
)

// rankedCategory pairs a category with its confidence for selection.
type rankedCategory struct {
	name string
	conf float64
}

// Build selects the dominant signals from the aggregated scores and
// assembles the outbound search query plus the local match criteria.
func Build(scores map[string]analyze.FeatureScore, ctx analyze.BoardContext, vocab *analyze.Vocabulary, city string, pageSize int) (immo.SearchQuery, MatchCriteria) {
	ranked := rankByConfidence(scores)

	top := ranked
	if len(top) > topCategories {
		top = top[:topCategories]
	}

	criteria := MatchCriteria{
		PropertyType: resolvePropertyType(top, scores),
	}

	for _, rc := range top {
		switch rc.name {
		case analyze.CatGarden:
			if rc.conf > outdoorThreshold {
				criteria.Garden = true
			}
		case analyze.CatBalcony:
			if rc.conf > outdoorThreshold {
				criteria.Balcony = true
			}
		}
		if vocab.IsStyle(rc.name) && rc.conf > styleThreshold {
			criteria.Styles = append(criteria.Styles, StylePreference{Name: rc.name, Confidence: rc.conf})
		}
	}

	// Never leave the downstream filter with zero style signal: fall
	// back to the single best style anywhere in the scores.
	if len(criteria.Styles) == 0 {
		if best, ok := bestStyle(ranked, vocab); ok {
			criteria.Styles = append(criteria.Styles, best)
		}
	}

	searchType := immo.TypeApartmentBuy
	if criteria.PropertyType == analyze.CatHouse {
		searchType = immo.TypeHouseBuy
	}

	query := immo.NewSearchQuery(city, immo.ResolveRegion(city), searchType, pageSize)
	return query, criteria
}

// rankByConfidence sorts categories descending by confidence. Name is
// the tie-breaker so identical inputs always rank identically.
func rankByConfidence(scores map[string]analyze.FeatureScore) []rankedCategory {
	ranked := make([]rankedCategory, 0, len(scores))
	for name, s := range scores {
		ranked = append(ranked, rankedCategory{name: name, conf: s.Confidence})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].conf != ranked[j].conf {
			return ranked[i].conf > ranked[j].conf
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

// resolvePropertyType picks Apartment or House. If either is among the
// top selection the higher-ranked one wins; otherwise raw confidences
// decide, with Apartment as the tie default.
func resolvePropertyType(top []rankedCategory, scores map[string]analyze.FeatureScore) string {
	for _, rc := range top {
		if rc.name == analyze.CatApartment || rc.name == analyze.CatHouse {
			return rc.name
		}
	}
	if scores[analyze.CatHouse].Confidence > scores[analyze.CatApartment].Confidence {
		return analyze.CatHouse
	}
	return analyze.CatApartment
}

func bestStyle(ranked []rankedCategory, vocab *analyze.Vocabulary) (StylePreference, bool) {
	for _, rc := range ranked {
		if vocab.IsStyle(rc.name) {
			return StylePreference{Name: rc.name, Confidence: rc.conf}, true
		}
	}
	return StylePreference{}, false
}
