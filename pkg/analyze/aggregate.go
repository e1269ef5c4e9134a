package analyze

import "math"

// Aggregate combines per-pin feature vectors into board-level scores
// and reweights them by the board context. Deterministic: identical
// inputs always yield identical scores.
func Aggregate(vectors []FeatureVector, ctx BoardContext) map[string]FeatureScore {
	scores := make(map[string]FeatureScore)
	if len(vectors) == 0 {
		return scores
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, vec := range vectors {
		for cat, conf := range vec {
			sums[cat] += conf
			counts[cat]++
		}
	}

	total := float64(len(vectors))
	for cat, count := range counts {
		avg := sums[cat] / float64(count)
		freq := float64(count) / total
		// Fractional exponents keep high-frequency-low-intensity and
		// low-frequency-high-intensity signals both visible.
		conf := math.Min(1.0, math.Pow(avg, 0.7)*math.Pow(freq, 0.5)*2.2)
		scores[cat] = FeatureScore{
			AvgScore:   avg,
			Frequency:  freq,
			Confidence: conf,
			Count:      count,
		}
	}

	reweight(scores, ctx)
	return scores
}

// reweight applies the context multipliers. Each adjustment is
// independent and multiplicative, capped at 1.0 when boosting.
func reweight(scores map[string]FeatureScore, ctx BoardContext) {
	switch ctx.LivingType {
	case LivingApartment:
		boost(scores, CatApartment, 2.5)
		dampen(scores, CatHouse, 0.2)
	case LivingHouse:
		boost(scores, CatHouse, 3.0)
		dampen(scores, CatApartment, 0.2)
	}

	switch ctx.PrimaryFocus {
	case FocusBalcony:
		boost(scores, CatBalcony, 1.8)
		dampen(scores, CatGarden, 0.4)
	case FocusGarden:
		boost(scores, CatGarden, 1.8)
		dampen(scores, CatBalcony, 0.4)
	}
}

func boost(scores map[string]FeatureScore, cat string, factor float64) {
	if s, ok := scores[cat]; ok {
		s.Confidence = math.Min(1.0, s.Confidence*factor)
		scores[cat] = s
	}
}

func dampen(scores map[string]FeatureScore, cat string, factor float64) {
	if s, ok := scores[cat]; ok {
		s.Confidence = s.Confidence * factor
		scores[cat] = s
	}
}
