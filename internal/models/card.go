package models

// WeatherSummary is a condensed daily forecast. A nil summary means the
// lookup was skipped or failed; it is never partially updated.
type WeatherSummary struct {
	Headline            string   `json:"headline"`
	TemperatureHighC    *float64 `json:"temperature_high_c,omitempty"`
	TemperatureLowC     *float64 `json:"temperature_low_c,omitempty"`
	PrecipitationChance *int     `json:"precipitation_chance,omitempty"`
	WindSpeedMaxKmh     *float64 `json:"wind_speed_max_kmh,omitempty"`
}

// DestinationCard is one normalized inspiration suggestion mapped from a
// single upstream explore candidate.
type DestinationCard struct {
	Destination string          `json:"destination"`
	ArrivalID   string          `json:"arrival_id,omitempty"`
	Country     string          `json:"country,omitempty"`
	WhyNow      string          `json:"why_now"`
	Events      []string        `json:"events,omitempty"`
	Weather     *WeatherSummary `json:"weather,omitempty"`
	Sources     []string        `json:"sources,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}
