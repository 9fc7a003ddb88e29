package composer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/payload"
	"github.com/dharmasatrya/tripscout/pkg/currency"
)

const maxRenderedFlights = 10

const noItinerariesGuidance = "No priced itineraries were returned. Expanding to Star Alliance and, if still empty, " +
	"ask the traveller for permission to include non-Star Alliance carriers."

// FormatDestinationCards renders the numbered inspiration-card block.
func FormatDestinationCards(cards []map[string]any) string {
	lines := []string{"### Inspiration Cards"}
	for idx, card := range cards {
		destination := payload.String(card, "destination", "arrival_id")
		if destination == "" {
			destination = "Unknown"
		}
		whyNow := payload.String(card, "why_now")
		if whyNow == "" {
			whyNow = "No highlights provided."
		}

		weatherLine := "Weather: (pending lookup)"
		if headline := payload.String(payload.Map(card, "weather"), "headline"); headline != "" {
			weatherLine = "Weather: " + headline
		}

		eventsLine := "Events: not listed."
		if events := stringList(card["events"]); len(events) > 0 {
			eventsLine = "Events: " + strings.Join(truncate(events, 3), ", ")
		}

		sourceLine := "Sources: SearchAPI"
		if sources := stringList(card["sources"]); len(sources) > 0 {
			sourceLine = "Sources: " + strings.Join(truncate(sources, 2), ", ")
		}

		lines = append(lines,
			fmt.Sprintf("%d. **%s** — %s", idx+1, destination, whyNow),
			"   "+weatherLine,
			"   "+eventsLine,
			"   "+sourceLine,
		)
	}
	return strings.Join(lines, "\n")
}

// FormatFlightSummary renders the flight section of a reply from a raw
// flights payload plus the orchestrator metadata.
func FormatFlightSummary(flightsPayload, metadata map[string]any) string {
	var sections []string

	flights := collectFlights(flightsPayload)
	direct, connecting := splitFlights(flights)
	if len(direct) > 0 {
		sections = append(sections, renderFlightBlock("Direct Flights", direct))
	}
	if len(connecting) > 0 {
		sections = append(sections, renderFlightBlock("Connecting Flights", connecting))
	}
	if len(sections) == 0 {
		sections = append(sections, noItinerariesGuidance)
	}

	if hint, ok := priceHint(metadata); ok {
		sections = append(sections, "Price hint: "+currency.Format(hint))
	}
	if googleURL := payload.String(metadata, "google_url"); googleURL != "" {
		sections = append(sections, "View on Google Flights: "+googleURL)
	}
	if calendarURL := payload.String(metadata, "calendar_url"); calendarURL != "" {
		sections = append(sections, "Calendar grid: "+calendarURL)
	}

	return strings.Join(sections, "\n\n")
}

// BuildDestinationWeatherReport correlates the first flight's destination
// with a card that carries weather data. Every required piece must be
// present, otherwise the section is omitted entirely.
func BuildDestinationWeatherReport(state map[string]any) string {
	cards := cardsFromState(state)
	if len(cards) == 0 {
		return ""
	}

	flightResults := payload.Map(state, "flight_results")
	flights := collectFlights(payload.Map(flightResults, "flights"))
	if len(flights) == 0 {
		return ""
	}
	segments := payload.Maps(flights[0], "segments")
	if len(segments) == 0 {
		return ""
	}

	arrivalCode := formatAirport(payload.Value(segments[len(segments)-1], "arrival_airport", "arrival_id"))
	card := matchCardByArrival(cards, arrivalCode)

	headline := payload.String(payload.Map(card, "weather"), "headline")
	destination := payload.String(card, "destination")
	if headline == "" || destination == "" {
		return ""
	}

	_, depDate := formatTime(segments[0]["departure_time"])
	_, arrDate := formatTime(segments[len(segments)-1]["arrival_time"])
	if depDate == "" || arrDate == "" {
		return ""
	}

	return fmt.Sprintf("Destination Weather: %s (%s -> %s): %s", destination, depDate, arrDate, headline)
}

// matchCardByArrival picks the card whose arrival code matches the flight's
// arrival code (case-insensitive substring either way), defaulting to the
// first card.
func matchCardByArrival(cards []map[string]any, arrivalCode string) map[string]any {
	code := strings.ToLower(arrivalCode)
	if code != "" && code != "unknown" {
		for _, card := range cards {
			cardCode := strings.ToLower(payload.String(card, "arrival_id"))
			if cardCode == "" {
				continue
			}
			if strings.Contains(code, cardCode) || strings.Contains(cardCode, code) {
				return card
			}
		}
	}
	return cards[0]
}

func collectFlights(flightsPayload map[string]any) []map[string]any {
	var flights []map[string]any
	for _, key := range []string{"best_flights", "other_flights"} {
		flights = append(flights, payload.Maps(flightsPayload, key)...)
	}
	return flights
}

func splitFlights(flights []map[string]any) (direct, connecting []map[string]any) {
	for _, flight := range flights {
		if len(direct)+len(connecting) >= maxRenderedFlights {
			break
		}
		if isDirect(flight) {
			direct = append(direct, flight)
		} else {
			connecting = append(connecting, flight)
		}
	}
	return direct, connecting
}

func isDirect(flight map[string]any) bool {
	stops := payload.Value(flight, "stops", "number_of_stops")
	if n, ok := payload.Float(stops); ok && n == 0 {
		return true
	}
	if s, ok := stops.(string); ok && (s == "0" || s == "nonstop") {
		return true
	}
	if segments, ok := flight["segments"].([]any); ok {
		return len(segments) <= 1
	}
	return false
}

func renderFlightBlock(title string, flights []map[string]any) string {
	blocks := []string{title}
	for idx, flight := range flights {
		blocks = append(blocks, formatFlightEntry(idx+1, flight))
	}
	return strings.Join(blocks, "\n\n")
}

func formatFlightEntry(index int, flight map[string]any) string {
	var parts []string
	segments := payload.Maps(flight, "segments")
	if len(segments) > 0 {
		parts = append(parts, formatPrimarySegment(index, segments[0]))
		for _, segment := range segments[1:] {
			parts = append(parts, formatConnectionSegment(segment))
		}
	} else {
		itinerary := payload.String(flight, "itinerary", "title")
		if itinerary == "" {
			itinerary = "Unnamed itinerary"
		}
		parts = append(parts, fmt.Sprintf("%d. **%s**", index, itinerary))
	}

	parts = append(parts,
		"**Aircraft**: "+extractAircraft(segments, flight),
		"**Amenities**: "+extractAmenities(segments, flight),
		"**Baggage**: "+extractBaggage(flight),
	)

	rawPrice := payload.Value(flight, "price", "price_per_ticket")
	priceText := "N/A"
	if normalized, ok := currency.Normalize(rawPrice, ""); ok {
		priceText = fmt.Sprintf("%.0f %s", normalized.Amount, normalized.Currency)
	} else if s, ok := rawPrice.(string); ok && s != "" {
		priceText = s
	}

	stopsText := "stops data unavailable"
	if stops, ok := nonZeroNumber(flight, "stops", "number_of_stops"); ok {
		stopsText = fmt.Sprintf("%d stops", stops)
	}

	parts = append(parts, fmt.Sprintf("**Price: %s. %s.**", priceText, stopsText))
	return strings.Join(parts, "\n")
}

func formatPrimarySegment(index int, segment map[string]any) string {
	code := segmentCode(segment)
	departure := formatAirport(payload.Value(segment, "departure_airport", "departure_id"))
	arrival := formatAirport(payload.Value(segment, "arrival_airport", "arrival_id"))
	depTime, depDate := formatTime(segment["departure_time"])
	arrTime, _ := formatTime(segment["arrival_time"])
	return fmt.Sprintf("%d. **%s**: %s %s -> %s %s | %s", index, code, departure, depTime, arrival, arrTime, depDate)
}

func formatConnectionSegment(segment map[string]any) string {
	code := segmentCode(segment)
	departure := formatAirport(payload.Value(segment, "departure_airport", "departure_id"))
	arrival := formatAirport(payload.Value(segment, "arrival_airport", "arrival_id"))
	depTime, depDate := formatTime(segment["departure_time"])
	arrTime, arrDate := formatTime(segment["arrival_time"])
	nextDay := ""
	if depDate != "" && arrDate != "" && depDate != arrDate {
		nextDay = " NEXT DAY"
	}
	return fmt.Sprintf("- THEN, **%s** - %s %s -> %s %s%s | %s", code, departure, depTime, arrival, arrTime, nextDay, arrDate)
}

func segmentCode(segment map[string]any) string {
	carrier := payload.String(segment, "airline_code", "carrier")
	number := payload.String(segment, "flight_number", "number")
	code := strings.TrimSpace(carrier + number)
	if code == "" {
		return "Flight"
	}
	return code
}

func formatAirport(raw any) string {
	switch v := raw.(type) {
	case map[string]any:
		if name := payload.String(v, "code", "name"); name != "" {
			return name
		}
	case string:
		if v != "" {
			return v
		}
	}
	return "Unknown"
}

// formatTime turns an ISO timestamp into (clock, date); unparseable strings
// pass through as-is with no date, anything else reads as "?".
func formatTime(raw any) (string, string) {
	s, ok := raw.(string)
	if !ok {
		return "?", ""
	}
	normalized := strings.Replace(s, "Z", "+00:00", 1)
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format("15:04"), t.Format(models.DateLayout)
		}
	}
	return s, ""
}

func extractAircraft(segments []map[string]any, flight map[string]any) string {
	for _, segment := range segments {
		if aircraft := payload.String(segment, "aircraft", "aircraft_type"); aircraft != "" {
			return aircraft
		}
	}
	if aircraft := payload.String(flight, "aircraft"); aircraft != "" {
		return aircraft
	}
	return "Not listed"
}

func extractAmenities(segments []map[string]any, flight map[string]any) string {
	var amenities []string
	if len(segments) > 0 {
		first := segments[0]
		amenities = append(amenities, stringList(first["amenities"])...)
		if seat := payload.String(first, "seat_type"); seat != "" {
			amenities = append(amenities, "Seat type "+seat)
		}
		if usb, ok := first["has_usb"].(bool); ok && usb {
			amenities = append(amenities, "In-seat USB outlet")
		}
	}
	if carbon := payload.Value(flight, "carbon_emissions", "carbon_emission"); carbon != nil {
		amenities = append(amenities, fmt.Sprintf("Carbon emission: %v", carbon))
	}
	if len(amenities) == 0 {
		return "Not listed"
	}
	return strings.Join(amenities, ", ")
}

func extractBaggage(flight map[string]any) string {
	for _, key := range []string{"baggage", "bag_info", "fare_conditions", "fare_details"} {
		if value, ok := flight[key]; ok && value != nil {
			if s, isString := value.(string); isString {
				if s == "" {
					continue
				}
				return s
			}
			return fmt.Sprintf("%v", value)
		}
	}
	return "Not specified"
}

func priceHint(metadata map[string]any) (currency.Price, bool) {
	hint := payload.Map(metadata, "price_hint")
	if hint == nil {
		// The hint arrives typed when composed in-process rather than from
		// a decoded conversation state.
		if price, ok := metadata["price_hint"].(currency.Price); ok {
			return price, true
		}
		return currency.Price{}, false
	}
	amount, ok := payload.Float(hint["amount"])
	if !ok {
		return currency.Price{}, false
	}
	code := payload.String(hint, "currency")
	if code == "" {
		code = "EUR"
	}
	return currency.Price{Amount: amount, Currency: code}, true
}

func nonZeroNumber(m map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		if n, ok := payload.Float(m[key]); ok && n != 0 {
			return int(n), true
		}
	}
	return 0, false
}

func stringList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var values []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}

func truncate(values []string, max int) []string {
	if len(values) <= max {
		return values
	}
	return values[:max]
}
