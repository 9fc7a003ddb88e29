package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripscout/internal/flightsearch"
	"github.com/dharmasatrya/tripscout/internal/models"
)

type FlightSearchHandler struct {
	service *flightsearch.Service
}

func NewFlightSearchHandler(service *flightsearch.Service) *FlightSearchHandler {
	return &FlightSearchHandler{service: service}
}

func (h *FlightSearchHandler) Search(c echo.Context) error {
	var req models.FlightSearchRequest
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

	resp, err := h.service.Search(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_error",
			Message: "Flight search failed: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
