package yelp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablescout/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.Equal(t, defaultLimit, client.limit)
	assert.Equal(t, domain.SourceYelp, client.Source())
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/businesses/search", r.URL.Path)
		assert.Equal(t, "Tel Aviv", r.URL.Query().Get("location"))
		assert.Equal(t, "italian", r.URL.Query().Get("term"))
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		rating := 4.5
		response := businessSearchResponse{
			Businesses: []business{
				{
					ID:     "biz-1",
					Name:   "Pasta Mia",
					Rating: &rating,
					Price:  "$$",
					Coordinates: &coordinates{
						Latitude:  32.08,
						Longitude: 34.78,
					},
					Location: businessLocation{
						DisplayAddress: []string{"30 Ibn Gabirol St", "Tel Aviv"},
					},
				},
			},
			Total: 1,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	places, err := client.Search(context.Background(), domain.PlaceQuery{Location: "Tel Aviv", Cuisine: "italian"})

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Pasta Mia", places[0].Name)
	assert.Equal(t, "30 Ibn Gabirol St, Tel Aviv", places[0].Address)
	require.NotNil(t, places[0].Rating)
	assert.Equal(t, 4.5, *places[0].Rating)
	require.NotNil(t, places[0].PriceLevel)
	assert.Equal(t, 2, *places[0].PriceLevel)
	require.NotNil(t, places[0].Coords)
	assert.Equal(t, 32.08, places[0].Coords.Lat)
	assert.Equal(t, "biz-1", places[0].SourceID)
	assert.Equal(t, domain.SourceYelp, places[0].Source)
}

func TestSearch_NoTermWithoutCuisine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("term"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(businessSearchResponse{})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	places, err := client.Search(context.Background(), domain.PlaceQuery{Location: "Tel Aviv"})

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearch_Unauthorized_NoRetry(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": "TOKEN_INVALID"}}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)

	places, err := client.Search(context.Background(), domain.PlaceQuery{Location: "Tel Aviv"})

	assert.Nil(t, places)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, domain.SourceYelp, provErr.Source)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Contains(t, provErr.Message, "TOKEN_INVALID")
}

func TestSearch_TooManyRequests_Retries(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(businessSearchResponse{
			Businesses: []business{{ID: "biz-2", Name: "Recovered"}},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	places, err := client.Search(context.Background(), domain.PlaceQuery{Location: "Tel Aviv"})

	require.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, 2, attempts)
}

func TestSearch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	places, err := client.Search(context.Background(), domain.PlaceQuery{Location: "Tel Aviv"})

	assert.Nil(t, places)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
