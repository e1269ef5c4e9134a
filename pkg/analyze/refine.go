package analyze

import (
	"context"
	"math"
	"strings"

	"github.com/chits-nema/Nestify/pkg/board"
)

// Refiner is the optional semantic re-scoring capability. Implementations
// return per-category confidences on a 0-100 scale and ok=false when the
// service is unavailable in any way; the pipeline then continues with
// lexical-only scores.
type Refiner interface {
	ScoreCategories(ctx context.Context, digest string, categories []string) (map[string]int, bool)
}

const maxDigestPins = 10

// BuildDigest condenses up to ten pins into a short natural-language
// digest for the refinement service. Board order is kept so runs stay
// deterministic.
func BuildDigest(pins []board.Pin) string {
	n := len(pins)
	if n > maxDigestPins {
		n = maxDigestPins
	}
	parts := make([]string, 0, n)
	for _, pin := range pins[:n] {
		line := strings.TrimSpace(pin.Title)
		if caption := strings.TrimSpace(pin.Caption); caption != "" {
			if line != "" {
				line += ": "
			}
			line += caption
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// ApplyRefinement blends external confidences into the aggregated
// scores. Strictly additive: categories the refiner skipped keep their
// lexical score, categories the lexical stage missed are seeded only
// when the refiner is reasonably sure (>30).
func ApplyRefinement(scores map[string]FeatureScore, external map[string]int) {
	for cat, raw := range external {
		ext := float64(raw) / 100.0
		if ext < 0 {
			ext = 0
		}
		if ext > 1 {
			ext = 1
		}

		if s, ok := scores[cat]; ok {
			blended := s.Confidence*0.6 + ext*0.4
			s.Confidence = math.Min(1.0, blended*1.3)
			scores[cat] = s
			continue
		}

		if raw > 30 {
			scores[cat] = FeatureScore{
				AvgScore:   ext,
				Frequency:  0,
				Confidence: ext * 0.7,
				Count:      0,
			}
		}
	}
}
