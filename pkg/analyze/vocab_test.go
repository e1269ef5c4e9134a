package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVocabulary(t *testing.T) {
	v, err := LoadVocabulary()
	require.NoError(t, err)

	for _, name := range []string{CatApartment, CatHouse, CatBalcony, CatGarden, CatModern, CatRustic, CatVintage} {
		assert.NotNil(t, v.Lookup(name), "missing category %s", name)
	}

	assert.True(t, v.IsStyle(CatRustic))
	assert.False(t, v.IsStyle(CatApartment))
	assert.True(t, v.IsType(CatHouse))
	assert.NotEmpty(t, v.ListingKeywords(CatRustic))
	assert.Contains(t, v.ListingKeywords(CatRustic), "charmant")

	for _, group := range []string{"balcony", "garden", "apartment", "house"} {
		assert.NotEmpty(t, v.Context[group], "missing context group %s", group)
	}
}

func TestParseVocabularyRejectsBadTables(t *testing.T) {
	_, err := ParseVocabulary([]byte("categories: []"))
	assert.Error(t, err)

	_, err = ParseVocabulary([]byte("categories:\n  - name: Empty\n    kind: style\n"))
	assert.Error(t, err)

	_, err = ParseVocabulary([]byte("{not yaml"))
	assert.Error(t, err)
}
