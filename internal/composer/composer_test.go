package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lisbonCard() map[string]any {
	return map[string]any{
		"destination": "Lisbon",
		"arrival_id":  "LIS",
		"why_now":     "Mild autumn days along the Tagus.",
		"events":      []any{"Belem Tower", "Alfama", "LX Factory", "Time Out Market"},
		"sources":     []any{"https://example.com/lisbon", "https://google.com/explore", "open-meteo"},
		"weather": map[string]any{
			"headline": "22°C high / 12°C low; precip 25% chance",
		},
	}
}

func connectingFlight() map[string]any {
	return map[string]any{
		"price": 512.0,
		"stops": 1.0,
		"segments": []any{
			map[string]any{
				"airline_code":      "LH",
				"flight_number":     "1170",
				"departure_airport": map[string]any{"code": "FRA"},
				"arrival_airport":   map[string]any{"code": "MUC"},
				"departure_time":    "2026-10-03T09:30:00",
				"arrival_time":      "2026-10-03T10:25:00",
				"aircraft":          "Airbus A320neo",
				"seat_type":         "Economy",
				"has_usb":           true,
			},
			map[string]any{
				"airline_code":      "LH",
				"flight_number":     "6940",
				"departure_airport": map[string]any{"code": "MUC"},
				"arrival_airport":   map[string]any{"code": "LIS"},
				"departure_time":    "2026-10-03T23:30:00",
				"arrival_time":      "2026-10-04T02:10:00",
			},
		},
	}
}

func TestComposeReplyMergesSections(t *testing.T) {
	state := map[string]any{
		"destination_cards": []any{lisbonCard()},
		"flight_results": map[string]any{
			"flights": map[string]any{
				"best_flights": []any{connectingFlight()},
			},
			"metadata": map[string]any{
				"google_url": "https://www.google.com/travel/flights?q=FRA-LIS",
			},
		},
	}

	reply := ComposeReply("paula", state, "a mild beach escape in October")

	assert.True(t, strings.HasPrefix(reply, "Hi, I am Paula. Here's what I gathered for you:"))
	assert.True(t, strings.HasSuffix(reply, "Let me know if you'd like to adjust any detail."))
	assert.Contains(t, reply, "Traveler intent: a mild beach escape in October")
	assert.Contains(t, reply, "### Inspiration Cards")
	assert.Contains(t, reply, "1. **Lisbon** — Mild autumn days along the Tagus.")
	assert.Contains(t, reply, "Connecting Flights")
	assert.Contains(t, reply, "View on Google Flights: https://www.google.com/travel/flights?q=FRA-LIS")
	assert.Contains(t, reply, "Destination Weather: Lisbon (2026-10-03 -> 2026-10-04): 22°C high / 12°C low; precip 25% chance")
}

func TestComposeReplyGinaQuestionnaire(t *testing.T) {
	state := map[string]any{}

	first := ComposeReply("gina", state, "")
	assert.Contains(t, first, "which travel personality best fits you?")
	assert.Contains(t, first, "The Analytical Curator")

	state["travel_personality_choice"] = "2"
	second := ComposeReply("gina", state, "")
	assert.NotContains(t, second, "which travel personality best fits you?")

	// Answered gates stay answered; the question never reappears.
	assert.Equal(t, second, ComposeReply("gina", state, ""))
}

func TestComposeReplyUnknownPersonaUsesDefault(t *testing.T) {
	reply := ComposeReply("marvin", map[string]any{}, "")
	assert.True(t, strings.HasPrefix(reply, "Hello from the Lufthansa Inspiria supervisor:"))
	assert.True(t, strings.HasSuffix(reply, "Let me know if you'd like to explore more options."))
}

func TestComposeReplyOmitsEmptySections(t *testing.T) {
	reply := ComposeReply("bianca", map[string]any{}, "")
	assert.Equal(t, "Bianca speaking with a spark of inspiration:\n\nShall we explore another vibe or lock this in?", reply)
}

func TestFormatDestinationCards(t *testing.T) {
	rendered := FormatDestinationCards([]map[string]any{lisbonCard()})

	assert.Contains(t, rendered, "### Inspiration Cards")
	assert.Contains(t, rendered, "1. **Lisbon** — Mild autumn days along the Tagus.")
	assert.Contains(t, rendered, "Weather: 22°C high / 12°C low; precip 25% chance")
	assert.Contains(t, rendered, "Events: Belem Tower, Alfama, LX Factory")
	assert.NotContains(t, rendered, "Time Out Market")
	assert.Contains(t, rendered, "Sources: https://example.com/lisbon, https://google.com/explore")
	assert.NotContains(t, rendered, "open-meteo")
}

func TestFormatDestinationCardsSparse(t *testing.T) {
	rendered := FormatDestinationCards([]map[string]any{{"destination": "Porto"}})

	assert.Contains(t, rendered, "1. **Porto** — No highlights provided.")
	assert.Contains(t, rendered, "Weather: (pending lookup)")
	assert.Contains(t, rendered, "Events: not listed.")
	assert.Contains(t, rendered, "Sources: SearchAPI")
}

func TestFormatFlightSummaryDirect(t *testing.T) {
	flightsPayload := map[string]any{
		"best_flights": []any{
			map[string]any{
				"price": "ab 431,50 €",
				"stops": 0.0,
				"segments": []any{
					map[string]any{
						"airline_code":      "LH",
						"flight_number":     "1166",
						"departure_airport": map[string]any{"code": "FRA"},
						"arrival_airport":   map[string]any{"code": "LIS"},
						"departure_time":    "2026-10-03T09:30:00",
						"arrival_time":      "2026-10-03T11:45:00",
					},
				},
			},
		},
	}

	rendered := FormatFlightSummary(flightsPayload, nil)

	assert.Contains(t, rendered, "Direct Flights")
	assert.NotContains(t, rendered, "Connecting Flights")
	assert.Contains(t, rendered, "1. **LH1166**: FRA 09:30 -> LIS 11:45 | 2026-10-03")
	assert.Contains(t, rendered, "**Price: 432 EUR. stops data unavailable.**")
}

func TestFormatFlightSummaryConnecting(t *testing.T) {
	flightsPayload := map[string]any{
		"other_flights": []any{connectingFlight()},
	}

	rendered := FormatFlightSummary(flightsPayload, nil)

	assert.Contains(t, rendered, "Connecting Flights")
	assert.Contains(t, rendered, "1. **LH1170**: FRA 09:30 -> MUC 10:25 | 2026-10-03")
	assert.Contains(t, rendered, "- THEN, **LH6940** - MUC 23:30 -> LIS 02:10 NEXT DAY | 2026-10-04")
	assert.Contains(t, rendered, "**Aircraft**: Airbus A320neo")
	assert.Contains(t, rendered, "Seat type Economy")
	assert.Contains(t, rendered, "In-seat USB outlet")
	assert.Contains(t, rendered, "**Price: 512 EUR. 1 stops.**")
}

func TestFormatFlightSummaryEmptyAddsGuidance(t *testing.T) {
	metadata := map[string]any{
		"price_hint": map[string]any{"amount": 431.0, "currency": "EUR"},
		"google_url": "https://www.google.com/travel/flights?q=FRA-LIS",
	}

	rendered := FormatFlightSummary(map[string]any{}, metadata)

	assert.Contains(t, rendered, "No priced itineraries were returned.")
	assert.Contains(t, rendered, "permission to include non-Star Alliance carriers")
	assert.Contains(t, rendered, "Price hint: 431 EUR")
	assert.Contains(t, rendered, "View on Google Flights: ")
}

func TestFormatFlightSummaryCapsRenderedFlights(t *testing.T) {
	var flights []any
	for i := 0; i < 15; i++ {
		flights = append(flights, map[string]any{
			"itinerary": "Option",
			"stops":     2.0,
			"price":     300.0 + float64(i),
		})
	}
	rendered := FormatFlightSummary(map[string]any{"other_flights": flights}, nil)
	assert.Equal(t, maxRenderedFlights, strings.Count(rendered, "**Option**"))
}

func TestBuildDestinationWeatherReportFallsBackToFirstCard(t *testing.T) {
	card := lisbonCard()
	card["arrival_id"] = "OPO"
	state := map[string]any{
		"destination_cards": []any{card},
		"flight_results": map[string]any{
			"flights": map[string]any{
				"best_flights": []any{connectingFlight()},
			},
		},
	}

	report := BuildDestinationWeatherReport(state)
	require.NotEmpty(t, report)
	assert.Contains(t, report, "Destination Weather: Lisbon")
}

func TestBuildDestinationWeatherReportRequiresAllPieces(t *testing.T) {
	noWeather := lisbonCard()
	delete(noWeather, "weather")
	state := map[string]any{
		"destination_cards": []any{noWeather},
		"flight_results": map[string]any{
			"flights": map[string]any{
				"best_flights": []any{connectingFlight()},
			},
		},
	}
	assert.Empty(t, BuildDestinationWeatherReport(state))

	assert.Empty(t, BuildDestinationWeatherReport(map[string]any{
		"destination_cards": []any{lisbonCard()},
	}))
}
