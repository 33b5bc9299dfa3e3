package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookTourRequest struct {
	TourID    int64  `json:"tour_id" validate:"required,gt=0"`
	PartySize int    `json:"party_size" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"`
}

// BookTour creates a tour booking for the acting user.
func (h *BookingHandler) BookTour(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body bookTourRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	booking, err := h.bookings.BookTour(c.Request().Context(), actor, body.TourID, body.PartySize, date)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, booking)
}

type bookEventRequest struct {
	EventID   int64 `json:"event_id" validate:"required,gt=0"`
	PartySize int   `json:"party_size" validate:"required,gt=0"`
}

// BookEvent creates an event booking for the acting user.
func (h *BookingHandler) BookEvent(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body bookEventRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	booking, err := h.bookings.BookEvent(c.Request().Context(), actor, body.EventID, body.PartySize)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, booking)
}

// MyBookings lists the acting user's bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	actor, _ := CurrentUser(c)
	bookings, err := h.bookings.MyBookings(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, bookings)
}

// Cancel cancels a booking.
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Cancel(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, booking)
}

// Confirm confirms a pending booking.
func (h *BookingHandler) Confirm(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Confirm(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, booking)
}
