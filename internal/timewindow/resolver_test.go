package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/tripscout/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExplicitDatesWinOverToken(t *testing.T) {
	window := models.TripWindow{
		Token:     "one_week_trip_in_march",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
	}
	assert.Equal(t, "2026-03-01..2026-03-07", Resolve(window, date(2026, time.January, 15)))
}

func TestResolveStartDateOnly(t *testing.T) {
	window := models.TripWindow{Token: "whatever", StartDate: "2026-03-01"}
	assert.Equal(t, "2026-03-01", Resolve(window, date(2026, time.January, 15)))
}

func TestResolveTokens(t *testing.T) {
	today := date(2026, time.January, 15)

	cases := []struct {
		name  string
		token string
		want  string
	}{
		{"static token passes through", "one_week_trip_in_the_next_six_months", "one_week_trip_in_the_next_six_months"},
		{"static token case folded", "Trip_In_The_Next_Six_Months", "trip_in_the_next_six_months"},
		{"month inside window", "one_week_trip_in_march", "one_week_trip_in_march"},
		{"last month of window", "weekend_in_june", "weekend_in_june"},
		{"month outside window", "one_week_trip_in_september", "one_week_trip_in_the_next_six_months"},
		{"two week fallback keeps prefix", "two_week_trip_in_december", "two_week_trip_in_the_next_six_months"},
		{"weekend fallback keeps prefix", "weekend_in_october", "weekend_trip_in_the_next_six_months"},
		{"plain trip fallback keeps prefix", "trip_in_november", "trip_in_the_next_six_months"},
		{"garbage month falls back", "one_week_trip_in_snowseason", "one_week_trip_in_the_next_six_months"},
		{"unrecognized token", "surprise_me", DefaultToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			window := models.TripWindow{Token: tc.token}
			assert.Equal(t, tc.want, Resolve(window, today))
		})
	}
}

func TestResolveWindowWrapsPastDecember(t *testing.T) {
	today := date(2026, time.October, 3)

	// October through March is in range, April is not.
	assert.Equal(t, "one_week_trip_in_february", Resolve(models.TripWindow{Token: "one_week_trip_in_february"}, today))
	assert.Equal(t, "one_week_trip_in_march", Resolve(models.TripWindow{Token: "one_week_trip_in_march"}, today))
	assert.Equal(t, "one_week_trip_in_the_next_six_months", Resolve(models.TripWindow{Token: "one_week_trip_in_april"}, today))
}
