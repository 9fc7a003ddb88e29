// Package scout turns explore-upstream candidates into destination
// inspiration cards, each optionally augmented with a weather snapshot.
package scout

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/dharmasatrya/tripscout/internal/cache"
	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/payload"
	"github.com/dharmasatrya/tripscout/internal/searchapi"
	"github.com/dharmasatrya/tripscout/internal/timewindow"
	"github.com/dharmasatrya/tripscout/internal/weather"
)

const whyNowFallback = "Trending inspiration within the Lufthansa Group network."

type Service struct {
	search  *searchapi.Client
	weather *weather.Client
	cache   cache.PayloadCache
}

func NewService(search *searchapi.Client, weatherClient *weather.Client, payloadCache cache.PayloadCache) *Service {
	if payloadCache == nil {
		payloadCache = cache.NewLRU(cache.DefaultLRUCapacity)
	}
	return &Service{
		search:  search,
		weather: weatherClient,
		cache:   payloadCache,
	}
}

// GenerateCards resolves the explore payload (from cache when possible), maps
// candidates into cards in payload order and stops once max_cards have been
// accumulated.
func (s *Service) GenerateCards(ctx context.Context, req models.DestinationRequest) (*models.DestinationResponse, error) {
	fingerprint := Fingerprint(req)
	explorePayload, hit := s.cache.Get(ctx, fingerprint)
	if !hit {
		timePeriod := timewindow.Resolve(req.TimeWindow, today())
		fresh, err := s.search.Explore(ctx, req, timePeriod)
		if err != nil {
			return nil, err
		}
		explorePayload = fresh
		s.cache.Set(ctx, fingerprint, explorePayload)
	} else {
		log.Printf("Destination scout cache hit for %s", fingerprint)
	}

	candidates := extractCandidates(explorePayload)

	cards := make([]models.DestinationCard, 0, req.MaxCards)
	for _, candidate := range candidates {
		if len(cards) >= req.MaxCards {
			break
		}
		card, ok := s.candidateToCard(ctx, candidate, req, explorePayload)
		if ok {
			cards = append(cards, card)
		}
	}

	metadata := map[string]any{
		"time_period_token": req.TimeWindow.Token,
		"result_count":      len(candidates),
	}
	if url := searchURL(explorePayload); url != "" {
		metadata["search_url"] = url
	}

	remaining := len(candidates) - len(cards)
	if remaining < 0 {
		remaining = 0
	}
	return &models.DestinationResponse{
		Cards:               cards,
		RemainingCandidates: remaining,
		SearchMetadata:      metadata,
	}, nil
}

func (s *Service) candidateToCard(ctx context.Context, candidate map[string]any, req models.DestinationRequest, explorePayload map[string]any) (models.DestinationCard, bool) {
	destination := payload.String(candidate, "destination", "title", "name", "city")
	if destination == "" {
		log.Printf("Skipping candidate without destination name")
		return models.DestinationCard{}, false
	}

	whyNow := payload.String(candidate, "snippet", "description", "tagline", "why_visit")
	if whyNow == "" {
		whyNow = whyNowFallback
	}

	events := normalizeEvents(payload.Value(candidate, "top_sights", "events"))

	coords := payload.Map(candidate, "coordinates")
	if coords == nil {
		coords = payload.Map(candidate, "geo")
	}

	var summary *models.WeatherSummary
	if req.WeatherRequested() && coords != nil {
		latitude, latOK := payload.Float(coords["latitude"])
		longitude, lonOK := payload.Float(coords["longitude"])
		if latOK && lonOK {
			summary = s.buildWeatherSummary(ctx, latitude, longitude, req)
		}
	}

	sources := make([]string, 0, 3)
	if link := payload.String(candidate, "link"); link != "" {
		sources = append(sources, link)
	}
	if url := searchURL(explorePayload); url != "" {
		sources = append(sources, url)
	}
	if summary != nil {
		sources = append(sources, "open-meteo")
	}

	metadata := map[string]any{
		"travel_token": req.TimeWindow.Token,
	}
	if priceText := payload.String(candidate, "price", "price_text"); priceText != "" {
		metadata["price_text"] = priceText
	}

	return models.DestinationCard{
		Destination: destination,
		ArrivalID:   payload.String(candidate, "iata_code", "iata", "arrival_id", "airport_code"),
		Country:     payload.String(candidate, "country", "region"),
		WhyNow:      strings.TrimSpace(whyNow),
		Events:      events,
		Weather:     summary,
		Sources:     sources,
		Metadata:    metadata,
	}, true
}

// buildWeatherSummary derives the forecast window from the trip window and
// skips the lookup entirely beyond the forecast horizon. Weather failures
// never fail card generation.
func (s *Service) buildWeatherSummary(ctx context.Context, latitude, longitude float64, req models.DestinationRequest) *models.WeatherSummary {
	start, end := deriveWeatherWindow(req, today())
	if !weather.WithinHorizon(start, today()) {
		log.Printf("Skipping weather lookup beyond forecast horizon")
		return nil
	}

	forecast, err := s.weather.FetchDaily(ctx, latitude, longitude,
		start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		log.Printf("Weather lookup failed for %g,%g: %v", latitude, longitude, err)
		return nil
	}
	return weather.Summarize(forecast)
}

func deriveWeatherWindow(req models.DestinationRequest, today time.Time) (time.Time, time.Time) {
	start, ok := req.TimeWindow.Start()
	if !ok {
		start = today
	}
	end, ok := req.TimeWindow.End()
	if !ok {
		end = start.AddDate(0, 0, req.ForecastDays-1)
	}
	return start, end
}

// Fingerprint identifies an explore request for caching: departure, first
// arrival (or placeholder), window token and the sorted unique interest set.
func Fingerprint(req models.DestinationRequest) string {
	arrival := "-"
	if len(req.ArrivalIDs) > 0 {
		arrival = strings.ToUpper(req.ArrivalIDs[0])
	}

	interestKey := "-"
	if len(req.Interests) > 0 {
		unique := make([]string, 0, len(req.Interests))
		seen := make(map[string]bool, len(req.Interests))
		for _, interest := range req.Interests {
			if !seen[interest] {
				seen[interest] = true
				unique = append(unique, interest)
			}
		}
		sort.Strings(unique)
		interestKey = strings.Join(unique, ",")
	}

	return strings.Join([]string{
		strings.ToUpper(req.DepartureID),
		arrival,
		req.TimeWindow.Token,
		interestKey,
	}, "|")
}

func searchURL(p map[string]any) string {
	return payload.String(payload.Map(p, "search_metadata"), "google_url")
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
