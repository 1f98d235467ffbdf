package yelp

import (
	"strings"

	"github.com/tablescout/backend/internal/domain"
)

// businessSearchResponse is the wire shape of a Fusion business search reply
type businessSearchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

type business struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Rating      *float64         `json:"rating,omitempty"`
	Price       string           `json:"price,omitempty"` // "$" through "$$$$"
	Coordinates *coordinates     `json:"coordinates,omitempty"`
	Location    businessLocation `json:"location"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type businessLocation struct {
	Address1       string   `json:"address1"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	DisplayAddress []string `json:"display_address"`
}

// mapBusinesses normalizes raw businesses into domain places, dropping
// any record that lacks a usable name
func mapBusinesses(businesses []business) []domain.Place {
	places := make([]domain.Place, 0, len(businesses))
	for _, b := range businesses {
		if b.Name == "" {
			continue
		}
		place := domain.Place{
			Name:     b.Name,
			Address:  buildAddress(b.Location),
			SourceID: b.ID,
			Source:   domain.SourceYelp,
		}
		if b.Rating != nil {
			rating := *b.Rating
			place.Rating = &rating
		}
		if level := priceToLevel(b.Price); level > 0 {
			place.PriceLevel = &level
		}
		if b.Coordinates != nil {
			place.Coords = &domain.Coordinates{
				Lat: b.Coordinates.Latitude,
				Lon: b.Coordinates.Longitude,
			}
		}
		places = append(places, place)
	}
	return places
}

// buildAddress prefers the display address, falling back to street + city
func buildAddress(loc businessLocation) string {
	if len(loc.DisplayAddress) > 0 {
		return strings.Join(loc.DisplayAddress, ", ")
	}
	parts := make([]string, 0, 2)
	if loc.Address1 != "" {
		parts = append(parts, loc.Address1)
	}
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	return strings.Join(parts, ", ")
}

// priceToLevel converts Yelp's "$"-string into an ordinal 1-4.
// Unknown or empty prices map to 0 (absent).
func priceToLevel(price string) int {
	level := strings.Count(price, "$")
	if level > 4 {
		level = 4
	}
	return level
}
