package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/weather"
)

type WeatherHandler struct {
	client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// Snapshot serves the standalone coordinate + window forecast lookup. The
// forecast horizon is enforced here, before any upstream call.
func (h *WeatherHandler) Snapshot(c echo.Context) error {
	var req models.WeatherSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	start, _ := time.Parse(models.DateLayout, req.StartDate)
	end, _ := time.Parse(models.DateLayout, req.EndDate)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !weather.WithinHorizon(start, today) || !weather.WithinHorizon(end, today) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "forecasts are only available up to 16 days ahead",
			Code:    http.StatusBadRequest,
		})
	}

	forecast, err := h.client.FetchDaily(c.Request().Context(), req.Latitude, req.Longitude, req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_error",
			Message: "Weather lookup failed: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	summary := weather.UnavailableHeadline
	if condensed := weather.Summarize(forecast); condensed != nil {
		summary = condensed.Headline
	}

	return c.JSON(http.StatusOK, models.WeatherSnapshotResponse{
		Summary: summary,
		Payload: forecast,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
