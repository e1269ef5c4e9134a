package immo

import "encoding/json"

// Image is one listing photo reference.
type Image struct {
	OriginalURL string `json:"originalUrl"`
}

// Platform is an external portal the listing is published on.
type Platform struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Address is the listing's location block.
type Address struct {
	City        string `json:"city"`
	DisplayName string `json:"displayName"`
	Region      string `json:"region"`
	Zip         string `json:"zip"`
}

// Listing is one property record from the search service. The service
// returns a loose bag of attributes; the fields the matcher consumes
// are typed here and everything else lands in Extra so nothing is lost
// when a listing is echoed back to the caller.
type Listing struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	BuyingPrice      float64    `json:"buyingPrice"`
	SquareMeter      float64    `json:"squareMeter"`
	Rooms            float64    `json:"rooms"`
	ConstructionYear int        `json:"constructionYear"`
	Balcony          bool       `json:"balcony"`
	Garden           bool       `json:"garden"`
	Lift             bool       `json:"lift"`
	Cellar           bool       `json:"cellar"`
	PlotArea         float64    `json:"plotArea"`
	NumberOfFloors   int        `json:"numberOfFloors"`
	BuildingType     string     `json:"buildingType"`
	ApartmentType    string     `json:"apartmentType"`
	Address          Address    `json:"address"`
	Images           []Image    `json:"images"`
	Platforms        []Platform `json:"platforms"`

	// Extra keeps unknown attributes for forward compatibility.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownListingKeys = map[string]bool{
	"id": true, "title": true, "buyingPrice": true, "squareMeter": true,
	"rooms": true, "constructionYear": true, "balcony": true,
	"garden": true, "lift": true, "cellar": true, "plotArea": true,
	"numberOfFloors": true, "buildingType": true, "apartmentType": true,
	"address": true, "images": true, "platforms": true,
}

// UnmarshalJSON decodes the typed fields and stashes everything else
// in Extra.
func (l *Listing) UnmarshalJSON(data []byte) error {
	type alias Listing
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownListingKeys[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*l = Listing(a)
	l.Extra = raw
	return nil
}

// MarshalJSON re-inlines the Extra attributes next to the typed fields.
func (l Listing) MarshalJSON() ([]byte, error) {
	type alias Listing
	base, err := json.Marshal(alias(l))
	if err != nil {
		return nil, err
	}
	if len(l.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range l.Extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// FirstImage returns the first available image URL, or "".
func (l Listing) FirstImage() string {
	for _, img := range l.Images {
		if img.OriginalURL != "" {
			return img.OriginalURL
		}
	}
	return ""
}

// FirstLink returns the first available external platform link, or "".
func (l Listing) FirstLink() string {
	for _, p := range l.Platforms {
		if p.Link != "" {
			return p.Link
		}
	}
	return ""
}
