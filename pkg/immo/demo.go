package immo

import "fmt"

// DemoListings returns the fixed fallback dataset used when the search
// service is unreachable or returns nothing. Parameterized by city and
// region so the demo data still looks local to the request.
func DemoListings(city, region string) []Listing {
	if city == "" {
		city = "Munich"
	}
	if region == "" {
		region = "Bayern"
	}

	mk := func(id, title string, price, sqm, rooms float64, balcony, garden bool, area string, img string) Listing {
		return Listing{
			ID:          id,
			Title:       title,
			BuyingPrice: price,
			SquareMeter: sqm,
			Rooms:       rooms,
			Balcony:     balcony,
			Garden:      garden,
			Address:     Address{City: city, DisplayName: fmt.Sprintf("%s %s", city, area), Region: region},
			Images:      []Image{{OriginalURL: "https://via.placeholder.com/800x500?text=" + img}},
		}
	}

	return []Listing{
		mk("demo-1", fmt.Sprintf("Sunny Loft in %s", city), 450000, 60, 2, true, false, "City Center", "Sunny+Loft"),
		mk("demo-2", fmt.Sprintf("Cozy Studio in %s", city), 320000, 35, 1, false, false, "Downtown", "Cozy+Studio"),
		mk("demo-3", fmt.Sprintf("Renovated 2BR in %s Old Town", city), 540000, 68, 2, true, false, "Historic Center", "Old+Town+Charm"),
		mk("demo-4", fmt.Sprintf("Riverside Apartment in %s", city), 520000, 70, 3, true, false, "Riverside", "Riverside+Apartment"),
		mk("demo-5", fmt.Sprintf("Modern Student Studio in %s", city), 250000, 28, 1, false, false, "Student District", "Student+Studio"),
		mk("demo-6", fmt.Sprintf("Family House near %s", city), 780000, 120, 4, false, true, "Quiet Neighborhood", "Family+House"),
	}
}
