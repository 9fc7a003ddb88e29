package weather

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/payload"
)

const UnavailableHeadline = "Weather snapshot unavailable"

// Summarize condenses a daily forecast payload into a one-line snapshot
// built from the nearest-day value of each metric. Returns nil when the
// payload carries no usable fields.
func Summarize(forecast map[string]any) *models.WeatherSummary {
	daily := payload.Map(forecast, "daily")
	if daily == nil {
		return nil
	}

	var high, low, wind *float64
	var precip *int
	if v, ok := payload.FirstFloat(daily["temperature_2m_max"]); ok {
		high = &v
	}
	if v, ok := payload.FirstFloat(daily["temperature_2m_min"]); ok {
		low = &v
	}
	if v, ok := payload.FirstInt(daily["precipitation_probability_max"]); ok {
		precip = &v
	}
	if v, ok := payload.FirstFloat(payload.Value(daily, "wind_speed_10m_max", "windspeed_10m_max")); ok {
		wind = &v
	}

	if high == nil && low == nil && precip == nil && wind == nil {
		return nil
	}

	var parts []string
	switch {
	case high != nil && low != nil:
		parts = append(parts, fmt.Sprintf("%.0f°C high / %.0f°C low", *high, *low))
	case high != nil:
		parts = append(parts, fmt.Sprintf("%.0f°C daytime high", *high))
	case low != nil:
		parts = append(parts, fmt.Sprintf("%.0f°C overnight low", *low))
	}
	if precip != nil {
		parts = append(parts, fmt.Sprintf("precip %d%% chance", *precip))
	}
	if wind != nil {
		parts = append(parts, fmt.Sprintf("wind gusts %.0f km/h", *wind))
	}

	headline := UnavailableHeadline
	if len(parts) > 0 {
		headline = strings.Join(parts, "; ")
	}

	return &models.WeatherSummary{
		Headline:            headline,
		TemperatureHighC:    high,
		TemperatureLowC:     low,
		PrecipitationChance: precip,
		WindSpeedMaxKmh:     wind,
	}
}
