package osm

import (
	"fmt"
	"strings"

	"github.com/tablescout/backend/internal/domain"
)

// geocodeResult is one Nominatim search hit. Coordinates arrive as strings.
type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// overpassResponse is the wire shape of an Overpass interpreter reply
type overpassResponse struct {
	Elements []element `json:"elements"`
}

// element is one OSM node or way. Ways carry their coordinates under
// "center" when queried with "out center".
type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *elementCenter    `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type elementCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// mapElements normalizes raw OSM elements into domain places. Elements
// without a name tag are dropped. OSM carries no ratings or prices, so
// both stay absent.
func mapElements(elements []element) []domain.Place {
	places := make([]domain.Place, 0, len(elements))
	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		place := domain.Place{
			Name:     name,
			Address:  buildAddress(el.Tags),
			SourceID: fmt.Sprintf("%s/%d", el.Type, el.ID),
			Source:   domain.SourceOSM,
		}
		if coords := elementCoords(el); coords != nil {
			place.Coords = coords
		}
		places = append(places, place)
	}
	return places
}

// elementCoords picks node coordinates or the way center, whichever exists
func elementCoords(el element) *domain.Coordinates {
	if el.Lat != nil && el.Lon != nil {
		return &domain.Coordinates{Lat: *el.Lat, Lon: *el.Lon}
	}
	if el.Center != nil {
		return &domain.Coordinates{Lat: el.Center.Lat, Lon: el.Center.Lon}
	}
	return nil
}

// buildAddress assembles a single address line from OSM addr:* tags,
// falling back to addr:full
func buildAddress(tags map[string]string) string {
	parts := make([]string, 0, 4)
	for _, key := range []string{"addr:street", "addr:housenumber", "addr:city", "addr:postcode"} {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return tags["addr:full"]
}
