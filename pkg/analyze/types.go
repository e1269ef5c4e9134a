package analyze

// FeatureVector maps category name to a confidence in [0,1] for a
// single pin. Categories with no trigger hits are absent, not zero;
// aggregation's frequency calculation depends on the distinction.
type FeatureVector map[string]float64

// FeatureScore is the board-level score for one category.
type FeatureScore struct {
	AvgScore   float64 `json:"avg_score"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
	Count      int     `json:"count"`
}

// Focus is the board's dominant outdoor-space leaning.
type Focus string

const (
	FocusBalcony      Focus = "balcony"
	FocusGarden       Focus = "garden"
	FocusOutdoorSpace Focus = "outdoor_space"
)

// SpaceType is the board's spatial-scale leaning.
type SpaceType string

const (
	SpaceSmallUrban    SpaceType = "small_urban"
	SpaceLargeSuburban SpaceType = "large_suburban"
	SpaceMixed         SpaceType = "mixed"
)

// LivingType is the board's housing-type leaning.
type LivingType string

const (
	LivingApartment LivingType = "apartment"
	LivingHouse     LivingType = "house"
	LivingMixed     LivingType = "mixed"
)

// BoardContext is the high-level read on a whole board, derived once
// per run and immutable afterwards.
type BoardContext struct {
	PrimaryFocus  Focus          `json:"primary_focus"`
	SpaceType     SpaceType      `json:"space_type"`
	LivingType    LivingType     `json:"living_type"`
	MentionCounts map[string]int `json:"mention_counts"`
}
