// Package flightsearch orchestrates flight + calendar lookups against the
// search upstream.
package flightsearch

import (
	"context"
	"log"

	"github.com/dharmasatrya/tripscout/internal/airlines"
	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/payload"
	"github.com/dharmasatrya/tripscout/internal/searchapi"
	"github.com/dharmasatrya/tripscout/pkg/currency"
)

// Search-scope metadata values. A widened result that is still empty means
// the traveller must grant permission before searching beyond the alliance;
// the service never widens twice.
const (
	ScopeHomeGroup = "home-group"
	ScopeWidened   = "widened"
)

type Service struct {
	client *searchapi.Client
}

func NewService(client *searchapi.Client) *Service {
	return &Service{client: client}
}

// Search issues the primary flights lookup, widening the carrier allowlist
// once when the home-group result is empty. The calendar grid is an
// enhancement: its failure is logged and the primary result still returned.
func (s *Service) Search(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResponse, error) {
	flightsPayload, err := s.client.Flights(ctx, req)
	if err != nil {
		return nil, err
	}

	searchScope := ScopeHomeGroup
	if isEmptyPayload(flightsPayload) {
		widened := req
		widened.IncludedAirlines = airlines.StarAlliance()
		flightsPayload, err = s.client.Flights(ctx, widened)
		if err != nil {
			return nil, err
		}
		searchScope = ScopeWidened
	}

	var calendarPayload map[string]any
	if req.CalendarWindow != nil {
		calendarPayload, err = s.client.Calendar(ctx, req)
		if err != nil {
			log.Printf("Calendar lookup failed: %v", err)
			calendarPayload = nil
		}
	}

	metadata := map[string]any{
		"search_scope": searchScope,
	}
	if googleURL := searchURL(flightsPayload); googleURL != "" {
		metadata["google_url"] = googleURL
	}
	if calendarURL := searchURL(calendarPayload); calendarURL != "" {
		metadata["calendar_url"] = calendarURL
	}
	if hint, ok := ExtractBestPrice(flightsPayload, req.Currency); ok {
		metadata["price_hint"] = hint
	}

	return &models.FlightSearchResponse{
		Flights:  flightsPayload,
		Calendar: calendarPayload,
		Metadata: metadata,
	}, nil
}

// ExtractBestPrice scans best_flights then other_flights and returns the
// first parseable fare.
func ExtractBestPrice(flightsPayload map[string]any, currencyCode string) (currency.Price, bool) {
	for _, key := range []string{"best_flights", "other_flights"} {
		for _, candidate := range payload.Maps(flightsPayload, key) {
			raw := payload.Value(candidate, "price", "price_per_ticket")
			if price, ok := currency.Normalize(raw, currencyCode); ok {
				return price, true
			}
		}
	}
	return currency.Price{}, false
}

func isEmptyPayload(flightsPayload map[string]any) bool {
	for _, key := range []string{"best_flights", "other_flights"} {
		if len(payload.List(flightsPayload, key)) > 0 {
			return false
		}
	}
	return true
}

func searchURL(p map[string]any) string {
	if p == nil {
		return ""
	}
	return payload.String(payload.Map(p, "search_metadata"), "google_url")
}
