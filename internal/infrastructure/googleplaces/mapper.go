package googleplaces

import "github.com/tablescout/backend/internal/domain"

// textSearchResponse is the wire shape of a Places Text Search reply.
// Provider shapes never leave this package; everything downstream sees
// only domain.Place.
type textSearchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Geometry         geometry `json:"geometry"`
	PlaceID          string   `json:"place_id"`
}

type geometry struct {
	Location location `json:"location"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// mapPlaces normalizes raw results into domain places, dropping any
// record that lacks a usable name
func mapPlaces(results []placeResult) []domain.Place {
	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		place := domain.Place{
			Name:     r.Name,
			Address:  r.FormattedAddress,
			SourceID: r.PlaceID,
			Source:   domain.SourceGooglePlaces,
			Coords: &domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lon: r.Geometry.Location.Lng,
			},
		}
		if r.Rating != nil {
			rating := *r.Rating
			place.Rating = &rating
		}
		if r.PriceLevel != nil {
			level := *r.PriceLevel
			place.PriceLevel = &level
		}
		places = append(places, place)
	}
	return places
}
