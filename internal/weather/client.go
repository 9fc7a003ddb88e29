// Package weather fetches and condenses Open-Meteo daily forecasts.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ForecastHorizonDays is how far ahead the upstream can forecast. Callers
// must not request windows starting beyond it.
const ForecastHorizonDays = 16

var dailyMetrics = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
	"wind_speed_10m_max",
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchDaily retrieves the daily forecast arrays for a coordinate pair over
// an inclusive ISO date range.
func (c *Client) FetchDaily(ctx context.Context, latitude, longitude float64, startDate, endDate string) (map[string]any, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", latitude))
	params.Set("longitude", fmt.Sprintf("%g", longitude))
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	params.Set("daily", strings.Join(dailyMetrics, ","))
	params.Set("timezone", "UTC")
	params.Set("windspeed_unit", "kmh")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("forecast response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast failed with status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("forecast response: %w", err)
	}
	return payload, nil
}

// WithinHorizon reports whether a window starting at start can still be
// forecast as of today.
func WithinHorizon(start, today time.Time) bool {
	return !start.After(today.AddDate(0, 0, ForecastHorizonDays))
}
