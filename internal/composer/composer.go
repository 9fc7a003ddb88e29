// Package composer merges destination cards, flight results and weather into
// persona-voiced reply text.
package composer

import (
	"strings"

	"github.com/dharmasatrya/tripscout/internal/payload"
	"github.com/dharmasatrya/tripscout/internal/persona"
)

// ComposeReply builds the final reply for a persona from the conversation
// state bag. Sections render in a fixed order, blank-line separated; empty
// sections are omitted rather than rendered blank.
func ComposeReply(personaName string, state map[string]any, intent string) string {
	profile := persona.Lookup(personaName)
	sections := []string{profile.Opener}

	// The questionnaire is asked exactly once per conversation; once the
	// gate key holds an answer it never reappears.
	if profile.Questionnaire != "" && !truthy(state[profile.QuestionnaireGate]) {
		sections = append(sections, profile.Questionnaire)
	}

	if intent != "" {
		sections = append(sections, "Traveler intent: "+intent)
	}

	if cards := cardsFromState(state); len(cards) > 0 {
		sections = append(sections, FormatDestinationCards(cards))
	}

	if flightResults := payload.Map(state, "flight_results"); flightResults != nil {
		flightsPayload := payload.Map(flightResults, "flights")
		metadata := payload.Map(flightResults, "metadata")
		if flightsPayload != nil {
			sections = append(sections, FormatFlightSummary(flightsPayload, metadata))
		}
	}

	if report := BuildDestinationWeatherReport(state); report != "" {
		sections = append(sections, report)
	}

	sections = append(sections, profile.Closer)
	return strings.Join(sections, "\n\n")
}

func cardsFromState(state map[string]any) []map[string]any {
	return payload.Maps(state, "destination_cards")
}

func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	case int:
		return value != 0
	default:
		return true
	}
}
