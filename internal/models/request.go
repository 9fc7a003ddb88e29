package models

import (
	"strings"
	"time"

	"github.com/dharmasatrya/tripscout/internal/airlines"
)

const DateLayout = "2006-01-02"

var travelClasses = []string{"economy", "premium_economy", "business", "first"}

// TripWindow carries a semantic trip token plus optional explicit dates.
type TripWindow struct {
	Token     string `json:"token"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (w TripWindow) Start() (time.Time, bool) {
	return parseDate(w.StartDate)
}

func (w TripWindow) End() (time.Time, bool) {
	return parseDate(w.EndDate)
}

func (w TripWindow) Validate() error {
	// Explicit dates stand on their own; a token is only required when the
	// window has no dates to resolve from.
	if len(strings.TrimSpace(w.Token)) < 3 && w.StartDate == "" {
		return ErrMissingWindowToken
	}
	start, hasStart := w.Start()
	if w.StartDate != "" && !hasStart {
		return ErrInvalidWindowDate
	}
	end, hasEnd := w.End()
	if w.EndDate != "" && !hasEnd {
		return ErrInvalidWindowDate
	}
	if hasStart && hasEnd && start.After(end) {
		return ErrWindowOutOfOrder
	}
	return nil
}

// CalendarWindow is the date range for a calendar price-grid lookup.
type CalendarWindow struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (w CalendarWindow) Validate() error {
	start, ok := parseDate(w.StartDate)
	if !ok {
		return ErrInvalidCalendarWindow
	}
	end, ok := parseDate(w.EndDate)
	if !ok {
		return ErrInvalidCalendarWindow
	}
	if start.After(end) {
		return ErrCalendarOutOfOrder
	}
	if end.Sub(start) > 60*24*time.Hour {
		return ErrCalendarSpanTooWide
	}
	return nil
}

type FlightSearchRequest struct {
	DepartureID      string          `json:"departure_id"`
	ArrivalID        string          `json:"arrival_id"`
	OutboundDate     string          `json:"outbound_date"`
	ReturnDate       string          `json:"return_date,omitempty"`
	Adults           int             `json:"adults"`
	TravelClass      string          `json:"travel_class"`
	Stops            string          `json:"stops"`
	IncludedAirlines []string        `json:"included_airlines,omitempty"`
	Currency         string          `json:"currency"`
	Locale           string          `json:"locale"`
	Region           string          `json:"region"`
	CalendarWindow   *CalendarWindow `json:"calendar_window,omitempty"`
	CalendarLimit    int             `json:"calendar_limit"`
}

func (r *FlightSearchRequest) Validate() error {
	if len(strings.TrimSpace(r.DepartureID)) < 3 {
		return ErrMissingDeparture
	}
	if len(strings.TrimSpace(r.ArrivalID)) < 3 {
		return ErrMissingArrival
	}
	if _, ok := parseDate(r.OutboundDate); !ok {
		return ErrInvalidOutboundDate
	}
	if r.ReturnDate != "" {
		if _, ok := parseDate(r.ReturnDate); !ok {
			return ErrInvalidReturnDate
		}
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.TravelClass == "" {
		r.TravelClass = "economy"
	}
	if !contains(travelClasses, r.TravelClass) {
		return ErrInvalidTravelClass
	}
	if r.Stops == "" {
		r.Stops = "any"
	}
	if r.Stops != "any" && r.Stops != "nonstop" {
		return ErrInvalidStops
	}
	if len(r.IncludedAirlines) == 0 {
		r.IncludedAirlines = airlines.List(nil)
	}
	if r.Currency == "" {
		r.Currency = "EUR"
	}
	if r.Locale == "" {
		r.Locale = "en"
	}
	if r.Region == "" {
		r.Region = "DE"
	}
	if r.CalendarWindow != nil {
		if err := r.CalendarWindow.Validate(); err != nil {
			return err
		}
	}
	if r.CalendarLimit == 0 {
		r.CalendarLimit = 30
	}
	if r.CalendarLimit < 1 || r.CalendarLimit > 60 {
		return ErrInvalidCalendarLimit
	}
	return nil
}

type DestinationRequest struct {
	DepartureID    string     `json:"departure_id"`
	TimeWindow     TripWindow `json:"time_window"`
	Adults         int        `json:"adults"`
	Interests      []string   `json:"interests,omitempty"`
	ArrivalIDs     []string   `json:"arrival_ids,omitempty"`
	Limit          int        `json:"limit"`
	MaxCards       int        `json:"max_cards"`
	IncludeWeather *bool      `json:"include_weather,omitempty"`
	ForecastDays   int        `json:"forecast_days"`
}

// WeatherRequested defaults to true when the flag is omitted.
func (r *DestinationRequest) WeatherRequested() bool {
	return r.IncludeWeather == nil || *r.IncludeWeather
}

func (r *DestinationRequest) Validate() error {
	if len(strings.TrimSpace(r.DepartureID)) < 3 {
		return ErrMissingDeparture
	}
	if err := r.TimeWindow.Validate(); err != nil {
		return err
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.Limit <= 0 {
		r.Limit = 24
	}
	if r.MaxCards <= 0 {
		r.MaxCards = 3
	}
	if r.MaxCards > r.Limit {
		r.MaxCards = r.Limit
	}
	if r.ForecastDays == 0 {
		r.ForecastDays = 7
	}
	if r.ForecastDays < 1 || r.ForecastDays > 16 {
		return ErrInvalidForecastDays
	}
	return nil
}

type ComposeRequest struct {
	Persona           string         `json:"persona"`
	ConversationState map[string]any `json:"conversation_state"`
	Intent            string         `json:"intent,omitempty"`
}

func (r *ComposeRequest) Validate() error {
	if len(strings.TrimSpace(r.Persona)) < 2 {
		return ErrMissingPersona
	}
	if r.ConversationState == nil {
		r.ConversationState = map[string]any{}
	}
	return nil
}

type WeatherSnapshotRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

func (r *WeatherSnapshotRequest) Validate() error {
	start, ok := parseDate(r.StartDate)
	if !ok {
		return ErrInvalidWindowDate
	}
	end, ok := parseDate(r.EndDate)
	if !ok {
		return ErrInvalidWindowDate
	}
	if start.After(end) {
		return ErrWindowOutOfOrder
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDeparture      ValidationError = "departure_id must be at least 3 characters"
	ErrMissingArrival        ValidationError = "arrival_id must be at least 3 characters"
	ErrInvalidOutboundDate   ValidationError = "outbound_date must be a valid YYYY-MM-DD date"
	ErrInvalidReturnDate     ValidationError = "return_date must be a valid YYYY-MM-DD date"
	ErrInvalidTravelClass    ValidationError = "travel_class must be economy, premium_economy, business or first"
	ErrInvalidStops          ValidationError = "stops must be any or nonstop"
	ErrInvalidCalendarWindow ValidationError = "calendar_window dates must be valid YYYY-MM-DD dates"
	ErrCalendarOutOfOrder    ValidationError = "calendar_window start_date cannot be after end_date"
	ErrCalendarSpanTooWide   ValidationError = "calendar_window cannot span more than 60 days"
	ErrInvalidCalendarLimit  ValidationError = "calendar_limit must be between 1 and 60"
	ErrMissingWindowToken    ValidationError = "time_window token must be at least 3 characters"
	ErrInvalidWindowDate     ValidationError = "time_window dates must be valid YYYY-MM-DD dates"
	ErrWindowOutOfOrder      ValidationError = "start_date cannot be after end_date"
	ErrInvalidForecastDays   ValidationError = "forecast_days must be between 1 and 16"
	ErrMissingPersona        ValidationError = "persona must be at least 2 characters"
)

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
