package analyze

import (
	"strings"

	"github.com/chits-nema/Nestify/pkg/board"
)

// AnalyzeContext derives the board-level context from the full pin
// collection. Pure function over the concatenated pin text; ties in
// every rule favor the neutral branch.
func AnalyzeContext(pins []board.Pin, vocab *Vocabulary) BoardContext {
	var sb strings.Builder
	for _, pin := range pins {
		sb.WriteString(pin.Text())
		sb.WriteString(" ")
	}
	text := sb.String()

	counts := make(map[string]int, len(vocab.Context))
	for group, words := range vocab.Context {
		n := 0
		for _, w := range words {
			n += strings.Count(text, w)
		}
		counts[group] = n
	}

	balcony := float64(counts["balcony"])
	garden := float64(counts["garden"])
	apartment := float64(counts["apartment"])
	house := float64(counts["house"])

	ctx := BoardContext{
		PrimaryFocus:  FocusOutdoorSpace,
		SpaceType:     SpaceMixed,
		LivingType:    LivingMixed,
		MentionCounts: counts,
	}

	switch {
	case balcony > 1.5*garden:
		ctx.PrimaryFocus = FocusBalcony
	case garden > 1.5*balcony:
		ctx.PrimaryFocus = FocusGarden
	}

	switch {
	case balcony > 3:
		ctx.SpaceType = SpaceSmallUrban
	case garden > 3:
		ctx.SpaceType = SpaceLargeSuburban
	}

	// The balcony/garden ratio disjunct can classify a board as
	// "apartment" without any apartment-type words. That matches the
	// observed behavior of the scoring revision this implements; do
	// not reorder these branches.
	switch {
	case apartment > 1.5*house || balcony > 1.5*garden:
		ctx.LivingType = LivingApartment
	case house > apartment || house >= 2:
		ctx.LivingType = LivingHouse
	}

	return ctx
}
