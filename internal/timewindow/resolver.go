// Package timewindow converts trip windows into the time-period tokens the
// explore upstream accepts. The upstream only honors windows within roughly
// six months of "now", so out-of-range month tokens degrade to the generic
// six-month token instead of failing the request.
package timewindow

import (
	"strings"
	"time"

	"github.com/dharmasatrya/tripscout/internal/models"
)

const DefaultToken = "one_week_trip_in_the_next_six_months"

var staticTokens = map[string]struct{}{
	"one_week_trip_in_the_next_six_months": {},
	"two_week_trip_in_the_next_six_months": {},
	"weekend_trip_in_the_next_six_months":  {},
	"trip_in_the_next_six_months":          {},
}

// prefixFallbacks maps each month-token family to its generic six-month form.
var prefixFallbacks = []struct {
	prefix   string
	fallback string
}{
	{"one_week_trip_in_", "one_week_trip_in_the_next_six_months"},
	{"two_week_trip_in_", "two_week_trip_in_the_next_six_months"},
	{"weekend_in_", "weekend_trip_in_the_next_six_months"},
	{"trip_in_", "trip_in_the_next_six_months"},
}

// Resolve produces the single time-period query parameter for a trip window.
// Explicit dates win over the text token.
func Resolve(window models.TripWindow, today time.Time) string {
	start, hasStart := window.Start()
	end, hasEnd := window.End()
	if hasStart && hasEnd {
		return start.Format(models.DateLayout) + ".." + end.Format(models.DateLayout)
	}
	if hasStart {
		return start.Format(models.DateLayout)
	}
	return normalizeToken(strings.TrimSpace(window.Token), today)
}

func normalizeToken(token string, today time.Time) string {
	lowered := strings.ToLower(token)
	if _, ok := staticTokens[lowered]; ok {
		return lowered
	}

	months := allowedMonthTokens(today)
	for _, family := range prefixFallbacks {
		if !strings.HasPrefix(lowered, family.prefix) {
			continue
		}
		month := lowered[len(family.prefix):]
		if _, ok := months[month]; ok {
			return lowered
		}
		return family.fallback
	}
	return DefaultToken
}

// allowedMonthTokens names the six calendar months starting at today,
// wrapping past December.
func allowedMonthTokens(today time.Time) map[string]struct{} {
	tokens := make(map[string]struct{}, 6)
	month := int(today.Month())
	for i := 0; i < 6; i++ {
		name := strings.ToLower(time.Month(month).String())
		tokens[name] = struct{}{}
		month++
		if month > 12 {
			month = 1
		}
	}
	return tokens
}
