// Package searchapi wraps the SearchAPI query-string endpoints used by the
// flight search and destination scout services.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/tripscout/internal/airlines"
	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/ratelimit"
)

const (
	EngineFlights  = "google_flights"
	EngineCalendar = "google_flights_calendar"
	EngineExplore  = "google_travel_explore"
)

// AllowedInterests is the fixed explore-interest vocabulary. Anything else is
// dropped silently before the query goes out.
var AllowedInterests = []string{"popular", "outdoors", "beaches", "museums", "history", "skiing"}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Limiter *ratelimit.EngineLimiter
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.EngineLimiter
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: cfg.Limiter,
	}
}

func (c *Client) Flights(ctx context.Context, req models.FlightSearchRequest) (map[string]any, error) {
	params := url.Values{}
	params.Set("engine", EngineFlights)
	params.Set("departure_id", req.DepartureID)
	params.Set("arrival_id", req.ArrivalID)
	params.Set("outbound_date", req.OutboundDate)
	params.Set("travel_class", req.TravelClass)
	params.Set("stops", req.Stops)
	params.Set("adults", strconv.Itoa(req.Adults))
	params.Set("hl", req.Locale)
	params.Set("gl", req.Region)
	params.Set("currency", req.Currency)
	params.Set("included_airlines", airlines.CSV(req.IncludedAirlines))
	if req.ReturnDate != "" {
		params.Set("return_date", req.ReturnDate)
	}
	return c.perform(ctx, EngineFlights, params)
}

func (c *Client) Calendar(ctx context.Context, req models.FlightSearchRequest) (map[string]any, error) {
	if req.CalendarWindow == nil {
		return nil, fmt.Errorf("calendar_window missing")
	}
	params := url.Values{}
	params.Set("engine", EngineCalendar)
	params.Set("departure_id", req.DepartureID)
	params.Set("arrival_id", req.ArrivalID)
	params.Set("start_date", req.CalendarWindow.StartDate)
	params.Set("end_date", req.CalendarWindow.EndDate)
	params.Set("travel_class", req.TravelClass)
	params.Set("stops", req.Stops)
	params.Set("adults", strconv.Itoa(req.Adults))
	params.Set("hl", req.Locale)
	params.Set("gl", req.Region)
	params.Set("currency", req.Currency)
	params.Set("included_airlines", airlines.CSV(req.IncludedAirlines))
	params.Set("limit", strconv.Itoa(req.CalendarLimit))
	return c.perform(ctx, EngineCalendar, params)
}

// Explore issues an inspiration lookup. timePeriod is the already resolved
// provider token, see the timewindow package.
func (c *Client) Explore(ctx context.Context, req models.DestinationRequest, timePeriod string) (map[string]any, error) {
	params := url.Values{}
	params.Set("engine", EngineExplore)
	params.Set("departure_id", req.DepartureID)
	params.Set("time_period", timePeriod)
	params.Set("travel_mode", "flights_only")
	params.Set("adults", strconv.Itoa(req.Adults))
	params.Set("limit", strconv.Itoa(req.Limit))
	params.Set("gl", "DE")
	params.Set("hl", "en-GB")
	params.Set("currency", "EUR")
	params.Set("alliance", "STAR_ALLIANCE")
	if len(req.ArrivalIDs) > 0 {
		params.Set("arrival_id", req.ArrivalIDs[0])
	}
	if filtered := FilterInterests(req.Interests); len(filtered) > 0 {
		params.Set("interests", strings.Join(filtered, ","))
	}
	return c.perform(ctx, EngineExplore, params)
}

func (c *Client) perform(ctx context.Context, engine string, params url.Values) (map[string]any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, engine); err != nil {
			return nil, NewProviderError(engine, 0, err)
		}
	}

	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(engine, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewProviderError(engine, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(engine, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewProviderError(engine, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewProviderError(engine, resp.StatusCode, err)
	}
	return payload, nil
}

// FilterInterests case-folds, deduplicates and drops anything outside the
// allowed vocabulary, preserving first-occurrence order. No synonym mapping
// happens here.
func FilterInterests(raw []string) []string {
	var filtered []string
	for _, interest := range raw {
		normalized := strings.ToLower(strings.TrimSpace(interest))
		if normalized == "" {
			continue
		}
		if !allowedInterest(normalized) {
			continue
		}
		if !containsString(filtered, normalized) {
			filtered = append(filtered, normalized)
		}
	}
	return filtered
}

func allowedInterest(interest string) bool {
	return containsString(AllowedInterests, interest)
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
