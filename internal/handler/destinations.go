package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripscout/internal/models"
	"github.com/dharmasatrya/tripscout/internal/scout"
)

type DestinationHandler struct {
	service *scout.Service
}

func NewDestinationHandler(service *scout.Service) *DestinationHandler {
	return &DestinationHandler{service: service}
}

func (h *DestinationHandler) Cards(c echo.Context) error {
	var req models.DestinationRequest
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

	resp, err := h.service.GenerateCards(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_error",
			Message: "Destination scout failed: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
