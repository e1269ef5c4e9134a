package immo

// Property type values understood by the search service.
const (
	TypeApartmentBuy = "APARTMENTBUY"
	TypeHouseBuy     = "HOUSEBUY"
	TypeLandBuy      = "LANDBUY"
	TypeGarageBuy    = "GARAGEBUY"
	TypeOfficeBuy    = "OFFICEBUY"
)

// GeoSearch narrows a query to a town within a region.
type GeoSearch struct {
	GeoSearchQuery string `json:"geoSearchQuery"`
	GeoSearchType  string `json:"geoSearchType"`
	Region         string `json:"region"`
}

// SearchQuery is the payload sent to the search service. Only fields
// the service understands belong here; match criteria stay local.
type SearchQuery struct {
	Active      bool      `json:"active"`
	Type        string    `json:"type,omitempty"`
	SortBy      string    `json:"sortBy"`
	SortKey     string    `json:"sortKey"`
	From        int       `json:"from"`
	Size        int       `json:"size"`
	GeoSearches GeoSearch `json:"geoSearches"`
}

// NewSearchQuery builds a query for a town with the service's default
// sort order (newest first).
func NewSearchQuery(city, region, propertyType string, size int) SearchQuery {
	return SearchQuery{
		Active:  true,
		Type:    propertyType,
		SortBy:  "desc",
		SortKey: "publishDate",
		From:    0,
		Size:    size,
		GeoSearches: GeoSearch{
			GeoSearchQuery: Transliterate(city),
			GeoSearchType:  "town",
			Region:         Transliterate(region),
		},
	}
}

// SearchResult is the service's response envelope.
type SearchResult struct {
	Total   int       `json:"total"`
	Results []Listing `json:"results"`
}
