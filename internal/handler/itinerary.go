package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/service"
)

// ItineraryHandler handles itinerary generation endpoints.
type ItineraryHandler struct {
	itineraries *service.ItineraryService
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(itineraries *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraries: itineraries}
}

type generateRequest struct {
	Region    string   `json:"region" validate:"required,max=100"`
	Days      int      `json:"days" validate:"required,min=1,max=30"`
	Interests []string `json:"interests" validate:"max=10,dive,max=50"`
}

// Generate produces and stores an itinerary for the acting user.
func (h *ItineraryHandler) Generate(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body generateRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	itinerary, err := h.itineraries.Generate(c.Request().Context(), actor,
		body.Region, body.Days, body.Interests)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, itinerary)
}

// MyItineraries lists the acting user's stored itineraries.
func (h *ItineraryHandler) MyItineraries(c echo.Context) error {
	actor, _ := CurrentUser(c)
	itineraries, err := h.itineraries.MyItineraries(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, itineraries)
}
