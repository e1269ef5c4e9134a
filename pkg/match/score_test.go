package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chits-nema/Nestify/pkg/analyze"
	"github.com/chits-nema/Nestify/pkg/immo"
)

func mixedContext() analyze.BoardContext {
	return analyze.BoardContext{
		PrimaryFocus: analyze.FocusOutdoorSpace,
		SpaceType:    analyze.SpaceMixed,
		LivingType:   analyze.LivingMixed,
	}
}

func TestPreFilterDropsUnmatchedTitles(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatHouse,
		Styles:       []StylePreference{{Name: analyze.CatRustic, Confidence: 0.5}},
	}
	listings := []immo.Listing{
		{ID: "keep", Title: "Charmantes Haus am See"},
		{ID: "drop", Title: "Moderne Stadtwohnung"},
	}

	scored := Score(listings, criteria, mixedContext(), vocab)
	require.Len(t, scored, 1)
	assert.Equal(t, "keep", scored[0].ID)
}

func TestScoreWithoutCriteriaKeepsEverything(t *testing.T) {
	vocab := matchVocab(t)
	listings := []immo.Listing{
		{ID: "a", Title: "Objekt ohne Merkmale"},
		{ID: "b", Title: "Noch ein Objekt"},
	}

	scored := Score(listings, MatchCriteria{PropertyType: analyze.CatApartment}, mixedContext(), vocab)
	assert.Len(t, scored, 2)
}

func TestNewBuildPenaltyForCharacterSeekers(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatHouse,
		Balcony:      true,
		Garden:       true,
		Styles:       []StylePreference{{Name: analyze.CatRustic, Confidence: 0.5}},
	}
	listing := immo.Listing{
		ID:               "new",
		Title:            "Haus mit Balkon und Garten",
		Balcony:          true,
		Garden:           true,
		ConstructionYear: 2005,
	}

	scored := Score([]immo.Listing{listing}, criteria, mixedContext(), vocab)
	require.Len(t, scored, 1)

	// 5 (balcony) + 5 (garden) = 10, halved by the post-1990 penalty.
	assert.InDelta(t, 5.0, scored[0].MatchScore, 1e-9)
	assert.Contains(t, scored[0].MatchReasons, "Has balcony")
	assert.Contains(t, scored[0].MatchReasons, "Has garden")
	assert.Contains(t, scored[0].MatchReasons, "New build penalty (2005)")
}

func TestCharacterBuildingBonus(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatApartment,
		Styles:       []StylePreference{{Name: analyze.CatVintage, Confidence: 0.8}},
	}
	listing := immo.Listing{
		ID:               "altbau",
		Title:            "Klassischer Altbau mit Stuck",
		ConstructionYear: 1905,
	}

	scored := Score([]immo.Listing{listing}, criteria, mixedContext(), vocab)
	require.Len(t, scored, 1)

	// Vintage keywords "altbau" and "klassisch" both hit the title:
	// 0.8 * 2 * 3 = 4.8, plus 5 for the pre-1920 building.
	assert.InDelta(t, 9.8, scored[0].MatchScore, 1e-9)
	assert.Contains(t, scored[0].MatchReasons, "Character building (1905)")
}

func TestEstablishedBuildingWithoutCharacterStyles(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatApartment,
		Balcony:      true,
		Styles:       []StylePreference{{Name: analyze.CatModern, Confidence: 0.6}},
	}
	listing := immo.Listing{
		ID:               "old",
		Title:            "Wohnung mit Balkon",
		Balcony:          true,
		ConstructionYear: 1975,
	}

	scored := Score([]immo.Listing{listing}, criteria, mixedContext(), vocab)
	require.Len(t, scored, 1)

	// 5 (balcony) + 1 (pre-1980, no character style selected).
	assert.InDelta(t, 6.0, scored[0].MatchScore, 1e-9)
	assert.Contains(t, scored[0].MatchReasons, "Established building (1975)")
}

func TestStructuralProxies(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatHouse,
		Balcony:      true,
		Garden:       true,
	}
	listing := immo.Listing{
		ID:             "proxy",
		Title:          "Einfamilienhaus mit großem Grundstück",
		NumberOfFloors: 2,
		PlotArea:       320,
	}

	scored := Score([]immo.Listing{listing}, criteria, mixedContext(), vocab)
	require.Len(t, scored, 1)

	// 2 (multi-floor proxy) + 3 (plot area proxy).
	assert.InDelta(t, 5.0, scored[0].MatchScore, 1e-9)
	assert.Contains(t, scored[0].MatchReasons, "Has land (320m²)")
}

func TestTypeAlignmentMultipliers(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{PropertyType: analyze.CatApartment, Balcony: true}
	ctx := analyze.BoardContext{
		PrimaryFocus: analyze.FocusBalcony,
		SpaceType:    analyze.SpaceSmallUrban,
		LivingType:   analyze.LivingApartment,
	}

	aligned := immo.Listing{
		ID:            "flat",
		Title:         "Wohnung mit Balkon",
		Balcony:       true,
		ApartmentType: "APARTMENT",
	}
	against := immo.Listing{
		ID:           "house",
		Title:        "Haus mit Balkon",
		Balcony:      true,
		BuildingType: "Einfamilienhaus",
	}

	scored := Score([]immo.Listing{against, aligned}, criteria, ctx, vocab)
	require.Len(t, scored, 2)

	// Aligned: 5 * 1.5 + 3 focus bonus = 10.5.
	// Against: 5 * 0.3 + 3 = 4.5.
	assert.Equal(t, "flat", scored[0].ID)
	assert.InDelta(t, 10.5, scored[0].MatchScore, 1e-9)
	assert.Equal(t, "house", scored[1].ID)
	assert.InDelta(t, 4.5, scored[1].MatchScore, 1e-9)
}

func TestStableOrderAmongTies(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{PropertyType: analyze.CatApartment, Balcony: true}
	listings := []immo.Listing{
		{ID: "first", Title: "Wohnung mit Balkon", Balcony: true},
		{ID: "second", Title: "Apartment mit Balkon", Balcony: true},
	}

	scored := Score(listings, criteria, mixedContext(), vocab)
	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].MatchScore, scored[1].MatchScore)
	assert.Equal(t, "first", scored[0].ID)
	assert.Equal(t, "second", scored[1].ID)
}

func TestScoreUnfilteredKeepsEnglishTitles(t *testing.T) {
	vocab := matchVocab(t)
	criteria := MatchCriteria{
		PropertyType: analyze.CatApartment,
		Balcony:      true,
		Styles:       []StylePreference{{Name: analyze.CatModern, Confidence: 0.7}},
	}
	listings := []immo.Listing{
		{ID: "demo-1", Title: "Modern City Apartment with Balcony", Balcony: true},
		{ID: "demo-2", Title: "Spacious Family Home"},
	}

	scored := ScoreUnfiltered(listings, criteria, mixedContext(), vocab)
	require.Len(t, scored, 2)
	assert.Equal(t, "demo-1", scored[0].ID)
	assert.Greater(t, scored[0].MatchScore, scored[1].MatchScore)
}

func TestScoreEmptyInput(t *testing.T) {
	vocab := matchVocab(t)
	scored := Score(nil, MatchCriteria{}, mixedContext(), vocab)
	assert.Empty(t, scored)
}

func TestScoredListingJSONShape(t *testing.T) {
	s := ScoredListing{
		Listing: immo.Listing{
			ID:    "l1",
			Title: "Wohnung mit Balkon",
		},
		MatchScore: 7.5,
		Image:      "https://img.example/1.jpg",
		Link:       "https://listing.example/1",
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, "l1", m["id"])
	assert.Equal(t, 7.5, m["match_score"])
	assert.Equal(t, "https://img.example/1.jpg", m["image"])
	// Reasons are always present as an array, never null.
	reasons, ok := m["match_reasons"].([]any)
	assert.True(t, ok)
	assert.Empty(t, reasons)
}
