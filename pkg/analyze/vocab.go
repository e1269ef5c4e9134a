package analyze

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var vocabYAML []byte

// CategoryKind classifies a vocabulary entry. Only styles participate
// in the interior-boost rule and style scoring; only types participate
// in property-type resolution.
type CategoryKind string

const (
	KindType    CategoryKind = "type"
	KindOutdoor CategoryKind = "outdoor"
	KindStyle   CategoryKind = "style"
	KindAmenity CategoryKind = "amenity"
)

// Category names fixed by the current vocabulary revision. The table
// itself is open: unknown names load and score like any other entry.
const (
	CatApartment = "Apartment"
	CatHouse     = "House"
	CatBalcony   = "Balcony"
	CatGarden    = "Garden"
	CatModern    = "Modern"
	CatRustic    = "Rustic"
	CatVintage   = "Vintage"
	CatDark      = "Dark"
	CatNatural   = "Natural"
)

// Category is one vocabulary entry.
type Category struct {
	Name            string       `yaml:"name"`
	Kind            CategoryKind `yaml:"kind"`
	Triggers        []string     `yaml:"triggers"`
	ListingKeywords []string     `yaml:"listing_keywords"`
}

// Vocabulary is the immutable keyword table shared by all pipeline
// stages. Construct once, pass explicitly.
type Vocabulary struct {
	Categories []Category          `yaml:"categories"`
	Context    map[string][]string `yaml:"context"`

	byName map[string]*Category
}

// LoadVocabulary parses the embedded vocabulary table.
func LoadVocabulary() (*Vocabulary, error) {
	return ParseVocabulary(vocabYAML)
}

// ParseVocabulary parses a vocabulary table from YAML.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(v.Categories) == 0 {
		return nil, fmt.Errorf("vocabulary has no categories")
	}
	v.byName = make(map[string]*Category, len(v.Categories))
	for i := range v.Categories {
		c := &v.Categories[i]
		if len(c.Triggers) == 0 {
			return nil, fmt.Errorf("category %q has no triggers", c.Name)
		}
		v.byName[c.Name] = c
	}
	return &v, nil
}

// Lookup returns the category entry for name, or nil.
func (v *Vocabulary) Lookup(name string) *Category {
	return v.byName[name]
}

// CategoryNames returns the category names in table order.
func (v *Vocabulary) CategoryNames() []string {
	names := make([]string, len(v.Categories))
	for i, c := range v.Categories {
		names[i] = c.Name
	}
	return names
}

// IsStyle reports whether name is a style category.
func (v *Vocabulary) IsStyle(name string) bool {
	c := v.byName[name]
	return c != nil && c.Kind == KindStyle
}

// IsType reports whether name is a property-type category.
func (v *Vocabulary) IsType(name string) bool {
	c := v.byName[name]
	return c != nil && c.Kind == KindType
}

// ListingKeywords returns the German listing keywords for name, if any.
func (v *Vocabulary) ListingKeywords(name string) []string {
	if c := v.byName[name]; c != nil {
		return c.ListingKeywords
	}
	return nil
}
