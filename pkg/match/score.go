package match

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/immo"
)

// ScoredListing is a listing with its computed match score, the
// reasons behind it in application order, and normalized image/link
// fields for the caller.
type ScoredListing struct {
	immo.Listing
	MatchScore   float64  `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
	Image        string   `json:"image"`
	Link         string   `json:"link"`
}

// MarshalJSON inlines the listing attributes next to the match fields.
func (s ScoredListing) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(s.Listing)
	if err != nil {
		return nil, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	reasons := s.MatchReasons
	if reasons == nil {
		reasons = []string{}
	}
	extras := map[string]any{
		"match_score":   s.MatchScore,
		"match_reasons": reasons,
		"image":         s.Image,
		"link":          s.Link,
	}
	for k, v := range extras {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// Score pre-filters, scores, and ranks listings against the criteria
// and board context. The result is sorted descending by score with the
// original relative order preserved among ties. An empty input yields
// an empty result; scoring never fails.
func Score(listings []immo.Listing, criteria MatchCriteria, ctx analyze.BoardContext, vocab *analyze.Vocabulary) []ScoredListing {
	keywordLists := filterKeywordLists(criteria, vocab)

	scored := make([]ScoredListing, 0, len(listings))
	for _, listing := range listings {
		title := strings.ToLower(listing.Title)

		if len(keywordLists) > 0 && !titlePassesFilter(title, keywordLists) {
			continue
		}

		score, reasons := accumulate(listing, title, criteria, ctx, vocab)
		scored = append(scored, ScoredListing{
			Listing:      listing,
			MatchScore:   round2(score),
			MatchReasons: reasons,
			Image:        listing.FirstImage(),
			Link:         listing.FirstLink(),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	return scored
}

// filterKeywordLists collects the German keyword lists of the style and
// outdoor categories the criteria actually selected. The property type
// is already baked into the search query, so it does not narrow here.
func filterKeywordLists(criteria MatchCriteria, vocab *analyze.Vocabulary) [][]string {
	var lists [][]string
	add := func(cat string) {
		if kws := vocab.ListingKeywords(cat); len(kws) > 0 {
			lists = append(lists, kws)
		}
	}
	for _, style := range criteria.Styles {
		add(style.Name)
	}
	if criteria.Balcony {
		add(analyze.CatBalcony)
	}
	if criteria.Garden {
		add(analyze.CatGarden)
	}
	return lists
}

// titlePassesFilter requires at least one keyword from at least one of
// the selected lists. Listings that miss every list are dropped, not
// down-scored.
func titlePassesFilter(title string, lists [][]string) bool {
	for _, list := range lists {
		for _, kw := range list {
			if strings.Contains(title, kw) {
				return true
			}
		}
	}
	return false
}

// accumulate runs the scoring steps in their fixed order. Later
// multiplicative steps apply to the running total, so the order is
// part of the contract.
func accumulate(listing immo.Listing, title string, criteria MatchCriteria, ctx analyze.BoardContext, vocab *analyze.Vocabulary) (float64, []string) {
	score := 0.0
	var reasons []string

	// a. Amenity match, with structural proxies when the flag is
	// requested but the boolean is absent.
	if criteria.Balcony {
		if listing.Balcony {
			score += 5
			reasons = append(reasons, "Has balcony")
		} else if listing.NumberOfFloors > 1 {
			score += 2
			reasons = append(reasons, "Multi-floor building (balcony proxy)")
		}
	}
	if criteria.Garden {
		if listing.Garden {
			score += 5
			reasons = append(reasons, "Has garden")
		} else if listing.PlotArea > 50 {
			score += 3
			reasons = append(reasons, fmt.Sprintf("Has land (%.0fm²)", listing.PlotArea))
		}
	}

	// b. Style keyword hits against the German listing keywords.
	for _, style := range criteria.Styles {
		hits := matchedKeywords(title, vocab.ListingKeywords(style.Name))
		if len(hits) > 0 {
			score += style.Confidence * float64(len(hits)) * 3
			reasons = append(reasons, fmt.Sprintf("%s style: %s", style.Name, strings.Join(hits, ", ")))
		}
	}

	// c. Construction-year heuristic.
	if listing.ConstructionYear > 0 {
		if wantsCharacter(criteria) {
			switch {
			case listing.ConstructionYear <= 1920:
				score += 5
				reasons = append(reasons, fmt.Sprintf("Character building (%d)", listing.ConstructionYear))
			case listing.ConstructionYear <= 1950:
				score += 2
				reasons = append(reasons, fmt.Sprintf("Older building (%d)", listing.ConstructionYear))
			case listing.ConstructionYear > 1990:
				score *= 0.5
				reasons = append(reasons, fmt.Sprintf("New build penalty (%d)", listing.ConstructionYear))
			}
		} else if listing.ConstructionYear < 1980 {
			score += 1
			reasons = append(reasons, fmt.Sprintf("Established building (%d)", listing.ConstructionYear))
		}
	}

	// d. Board-context property-type alignment.
	switch declaredType(listing) {
	case analyze.LivingApartment:
		if ctx.LivingType == analyze.LivingApartment {
			score *= 1.5
			reasons = append(reasons, "Apartment matches board leaning")
		} else if ctx.LivingType == analyze.LivingHouse {
			score *= 0.3
			reasons = append(reasons, "Apartment against board leaning")
		}
	case analyze.LivingHouse:
		if ctx.LivingType == analyze.LivingHouse {
			score *= 1.5
			reasons = append(reasons, "House matches board leaning")
		} else if ctx.LivingType == analyze.LivingApartment {
			score *= 0.3
			reasons = append(reasons, "House against board leaning")
		}
	}

	// e. Board-context outdoor-space bonus for amenities the listing
	// actually has, not just requested ones.
	switch ctx.PrimaryFocus {
	case analyze.FocusBalcony:
		if listing.Balcony {
			score += 3
			reasons = append(reasons, "Balcony matches board focus")
		}
	case analyze.FocusGarden:
		if listing.Garden {
			score += 3
			reasons = append(reasons, "Garden matches board focus")
		}
	}

	return score, reasons
}

func matchedKeywords(title string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// wantsCharacter reports whether a Rustic or Vintage style was selected.
func wantsCharacter(criteria MatchCriteria) bool {
	for _, style := range criteria.Styles {
		if style.Name == analyze.CatRustic || style.Name == analyze.CatVintage {
			return true
		}
	}
	return false
}

// declaredType reads the listing's own type declaration.
func declaredType(listing immo.Listing) analyze.LivingType {
	bt := strings.ToLower(listing.BuildingType)
	if strings.Contains(bt, "haus") || strings.Contains(bt, "house") {
		return analyze.LivingHouse
	}
	if listing.ApartmentType != "" || strings.Contains(bt, "wohnung") || strings.Contains(bt, "apartment") {
		return analyze.LivingApartment
	}
	return analyze.LivingMixed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
