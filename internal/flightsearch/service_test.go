package flightsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/searchapi"
	"github.com/dharmasatrya/tripscout/pkg/currency"
)

func newRequest(t *testing.T) models.FlightSearchRequest {
	t.Helper()
	req := models.FlightSearchRequest{
		DepartureID:  "FRA",
		ArrivalID:    "JFK",
		OutboundDate: "2026-03-01",
	}
	require.NoError(t, req.Validate())
	return req
}

func newClient(serverURL string) *searchapi.Client {
	return searchapi.NewClient(searchapi.Config{
		BaseURL: serverURL,
		APIKey:  "token",
	})
}

func TestSearchReturnsCalendarWhenRequested(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("engine") {
		case searchapi.EngineFlights:
			json.NewEncoder(w).Encode(map[string]any{
				"search_metadata": map[string]any{"google_url": "https://www.google.com/travel/flights"},
				"best_flights":    []any{map[string]any{"itinerary": "LH123", "price": "€431"}},
			})
		case searchapi.EngineCalendar:
			json.NewEncoder(w).Encode(map[string]any{
				"search_metadata": map[string]any{"google_url": "https://www.google.com/travel/flights/calendar"},
				"price_matrix":    []any{},
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	req := newRequest(t)
	req.CalendarWindow = &models.CalendarWindow{StartDate: "2026-03-01", EndDate: "2026-03-31"}
	require.NoError(t, req.Validate())

	service := NewService(newClient(server.URL))
	resp, err := service.Search(context.Background(), req)
	require.NoError(t, err)

	best := resp.Flights["best_flights"].([]any)
	assert.Equal(t, "LH123", best[0].(map[string]any)["itinerary"])
	assert.NotNil(t, resp.Calendar)
	assert.Equal(t, "https://www.google.com/travel/flights", resp.Metadata["google_url"])
	assert.Equal(t, "https://www.google.com/travel/flights/calendar", resp.Metadata["calendar_url"])
	assert.Equal(t, ScopeHomeGroup, resp.Metadata["search_scope"])

	hint := resp.Metadata["price_hint"].(currency.Price)
	assert.InDelta(t, 431, hint.Amount, 0.001)
	assert.Equal(t, "EUR", hint.Currency)
}

func TestSearchDowngradesCalendarFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("engine") {
		case searchapi.EngineFlights:
			json.NewEncoder(w).Encode(map[string]any{
				"best_flights": []any{map[string]any{"itinerary": "LH123"}},
			})
		case searchapi.EngineCalendar:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	req := newRequest(t)
	req.CalendarWindow = &models.CalendarWindow{StartDate: "2026-03-01", EndDate: "2026-03-31"}
	require.NoError(t, req.Validate())

	service := NewService(newClient(server.URL))
	resp, err := service.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, resp.Calendar)
	assert.NotContains(t, resp.Metadata, "calendar_url")
}

func TestSearchWidensOnceWhenHomeGroupIsEmpty(t *testing.T) {
	var calls int
	var airlineParams []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		airlineParams = append(airlineParams, r.URL.Query().Get("included_airlines"))
		if calls == 1 {
			json.NewEncoder(w).Encode(map[string]any{"best_flights": []any{}, "other_flights": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"best_flights":    []any{map[string]any{"itinerary": "LX400", "price": "€310"}},
			"search_metadata": map[string]any{"google_url": "https://www.google.com/flights"},
		})
	}))
	defer server.Close()

	service := NewService(newClient(server.URL))
	resp, err := service.Search(context.Background(), newRequest(t))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, ScopeWidened, resp.Metadata["search_scope"])
	best := resp.Flights["best_flights"].([]any)
	assert.Equal(t, "LX400", best[0].(map[string]any)["itinerary"])

	// The retry must carry the widened carrier list, the primary the home group.
	assert.True(t, strings.HasPrefix(airlineParams[0], "LH,LX,OS"))
	assert.Contains(t, airlineParams[1], "UA")
}

func TestSearchKeepsEmptyWidenedResult(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"best_flights": []any{}})
	}))
	defer server.Close()

	service := NewService(newClient(server.URL))
	resp, err := service.Search(context.Background(), newRequest(t))
	require.NoError(t, err)

	// One widening retry, never a third attempt.
	assert.Equal(t, 2, calls)
	assert.Equal(t, ScopeWidened, resp.Metadata["search_scope"])
	assert.NotContains(t, resp.Metadata, "price_hint")
}

func TestSearchPropagatesPrimaryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := NewService(newClient(server.URL))
	_, err := service.Search(context.Background(), newRequest(t))

	var providerErr *searchapi.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, searchapi.EngineFlights, providerErr.Engine)
	assert.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
}

func TestExtractBestPriceScansBucketsInOrder(t *testing.T) {
	flightsPayload := map[string]any{
		"best_flights": []any{
			map[string]any{"itinerary": "LH401"},
			map[string]any{"price": "€431"},
		},
		"other_flights": []any{
			map[string]any{"price": "€290"},
		},
	}

	price, ok := ExtractBestPrice(flightsPayload, "EUR")
	require.True(t, ok)
	assert.InDelta(t, 431, price.Amount, 0.001)
	assert.Equal(t, "EUR", price.Currency)

	_, ok = ExtractBestPrice(map[string]any{}, "EUR")
	assert.False(t, ok)
}
