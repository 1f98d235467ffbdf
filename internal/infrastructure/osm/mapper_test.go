package osm

import "testing"

func TestBuildAddress(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{
			name: "full address tags",
			tags: map[string]string{
				"addr:street":      "Dizengoff",
				"addr:housenumber": "99",
				"addr:city":        "Tel Aviv",
				"addr:postcode":    "6439622",
			},
			want: "Dizengoff 99 Tel Aviv 6439622",
		},
		{
			name: "partial tags",
			tags: map[string]string{"addr:street": "Dizengoff", "addr:city": "Tel Aviv"},
			want: "Dizengoff Tel Aviv",
		},
		{
			name: "falls back to addr:full",
			tags: map[string]string{"addr:full": "Dizengoff 99, Tel Aviv"},
			want: "Dizengoff 99, Tel Aviv",
		},
		{
			name: "no address tags",
			tags: map[string]string{"name": "Unnamed Corner"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildAddress(tt.tags); got != tt.want {
				t.Errorf("buildAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementCoords(t *testing.T) {
	lat, lon := 32.07, 34.77

	t.Run("node coordinates", func(t *testing.T) {
		coords := elementCoords(element{Lat: &lat, Lon: &lon})
		if coords == nil || coords.Lat != lat || coords.Lon != lon {
			t.Errorf("elementCoords() = %v, want (%v, %v)", coords, lat, lon)
		}
	})

	t.Run("way center", func(t *testing.T) {
		coords := elementCoords(element{Center: &elementCenter{Lat: 1, Lon: 2}})
		if coords == nil || coords.Lat != 1 || coords.Lon != 2 {
			t.Errorf("elementCoords() = %v, want (1, 2)", coords)
		}
	})

	t.Run("no coordinates", func(t *testing.T) {
		if coords := elementCoords(element{}); coords != nil {
			t.Errorf("elementCoords() = %v, want nil", coords)
		}
	})
}

func TestMapElements(t *testing.T) {
	lat, lon := 32.07, 34.77

	elements := []element{
		{Type: "node", ID: 1, Lat: &lat, Lon: &lon, Tags: map[string]string{"name": "First"}},
		{Type: "node", ID: 2, Tags: map[string]string{"amenity": "restaurant"}}, // nameless
		{Type: "way", ID: 3, Center: &elementCenter{Lat: 1, Lon: 2}, Tags: map[string]string{"name": "Second"}},
	}

	places := mapElements(elements)

	if len(places) != 2 {
		t.Fatalf("len(places) = %d, want 2", len(places))
	}
	if places[0].SourceID != "node/1" {
		t.Errorf("SourceID = %q, want node/1", places[0].SourceID)
	}
	if places[1].SourceID != "way/3" {
		t.Errorf("SourceID = %q, want way/3", places[1].SourceID)
	}
	if places[0].Rating != nil || places[0].PriceLevel != nil {
		t.Error("OSM places should have no rating or price level")
	}
}
