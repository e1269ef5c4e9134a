package match

import (
	"sort"
	"strings"

	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/immo"
)

// ScoreUnfiltered scores and ranks listings without the keyword
// pre-filter. Used for the demo fallback dataset, whose English titles
// would never survive the German-keyword filter.
func ScoreUnfiltered(listings []immo.Listing, criteria MatchCriteria, ctx analyze.BoardContext, vocab *analyze.Vocabulary) []ScoredListing {
	scored := make([]ScoredListing, 0, len(listings))
	for _, listing := range listings {
		title := strings.ToLower(listing.Title)
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
