package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veramar/litoral/internal/domain"
)

// BookingStore defines booking persistence as consumed by BookingService.
type BookingStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByTourist(ctx context.Context, touristID int64) ([]domain.Booking, error)
	BookedSeats(ctx context.Context, tourID int64, date time.Time) (int, error)
	Create(ctx context.Context, b domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

// TourFinder resolves boat tours for capacity and pricing.
type TourFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.BoatTour, error)
}

// EventFinder resolves events for pricing.
type EventFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
}

// BookingService owns booking creation and lifecycle rules.
type BookingService struct {
	bookings BookingStore
	tours    TourFinder
	events   EventFinder
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookings BookingStore, tours TourFinder, events EventFinder) *BookingService {
	return &BookingService{bookings: bookings, tours: tours, events: events}
}

// BookingRequest is the validated input for creating a booking.
type BookingRequest struct {
	TourID    *int64
	EventID   *int64
	PartySize int
	BookedFor time.Time
}

// BookTour reserves seats on a boat tour for a date, enforcing the
// tour's remaining capacity for that date.
func (s *BookingService) BookTour(ctx context.Context, actor domain.User, tourID int64, partySize int, date time.Time) (*domain.Booking, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive", domain.ErrInvalidInput)
	}

	tour, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.BookedSeats(ctx, tourID, date)
	if err != nil {
		return nil, err
	}
	if booked+partySize > tour.Capacity {
		return nil, fmt.Errorf("%w: only %d seats left on %s", domain.ErrConflict,
			tour.Capacity-booked, date.Format("2006-01-02"))
	}

	return s.bookings.Create(ctx, domain.Booking{
		Reference:  uuid.NewString(),
		TouristID:  actor.ID,
		TourID:     &tourID,
		PartySize:  partySize,
		TotalCents: tour.PriceCents * int64(partySize),
		Status:     domain.BookingPending,
		BookedFor:  date,
	})
}

// BookEvent reserves tickets for an event on its start date.
func (s *BookingService) BookEvent(ctx context.Context, actor domain.User, eventID int64, partySize int) (*domain.Booking, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive", domain.ErrInvalidInput)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.EndsAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: event already ended", domain.ErrConflict)
	}

	return s.bookings.Create(ctx, domain.Booking{
		Reference:  uuid.NewString(),
		TouristID:  actor.ID,
		EventID:    &eventID,
		PartySize:  partySize,
		TotalCents: event.PriceCents * int64(partySize),
		Status:     domain.BookingPending,
		BookedFor:  event.StartsAt,
	})
}

// MyBookings lists the acting user's bookings.
func (s *BookingService) MyBookings(ctx context.Context, actor domain.User) ([]domain.Booking, error) {
	return s.bookings.ListByTourist(ctx, actor.ID)
}

// Cancel cancels a booking. Only its tourist or an admin may cancel,
// and a cancelled booking stays cancelled.
func (s *BookingService) Cancel(ctx context.Context, actor domain.User, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TouristID != actor.ID && !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	if booking.Status == domain.BookingCancelled {
		return booking, nil
	}
	return s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled)
}

// Confirm marks a pending booking confirmed. The owning operator or
// producer of the booked listing, or an admin, may confirm.
func (s *BookingService) Confirm(ctx context.Context, actor domain.User, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	allowed := actor.HasAdminAccess()
	if !allowed && booking.TourID != nil {
		tour, err := s.tours.FindByID(ctx, *booking.TourID)
		if err != nil {
			return nil, err
		}
		allowed = tour.OperatorID == actor.ID
	}
	if !allowed && booking.EventID != nil {
		event, err := s.events.FindByID(ctx, *booking.EventID)
		if err != nil {
			return nil, err
		}
		allowed = event.ProducerID == actor.ID
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if booking.Status != domain.BookingPending {
		return nil, fmt.Errorf("%w: booking is %s", domain.ErrConflict, booking.Status)
	}
	return s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed)
}
