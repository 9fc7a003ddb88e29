package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripscout/internal/composer"
	"github.com/dharmasatrya/tripscout/internal/models"
)

type ComposeHandler struct{}

func NewComposeHandler() *ComposeHandler {
	return &ComposeHandler{}
}

func (h *ComposeHandler) Compose(c echo.Context) error {
	var req models.ComposeRequest
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

	reply := composer.ComposeReply(req.Persona, req.ConversationState, req.Intent)

	return c.JSON(http.StatusOK, models.ComposeResponse{
		Persona: req.Persona,
		Intent:  req.Intent,
		Reply:   reply,
	})
}
