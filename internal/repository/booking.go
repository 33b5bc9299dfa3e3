package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const bookingColumns = `id, reference, tourist_id, tour_id, event_id,
	party_size, total_cents, status, booked_for, created_at, updated_at`

// BookingRepository handles booking data access operations.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindByID retrieves a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	return &booking, nil
}

// ListByTourist returns a tourist's bookings, newest first.
func (r *BookingRepository) ListByTourist(ctx context.Context, touristID int64) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings WHERE tourist_id = $1 ORDER BY created_at DESC`,
		touristID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for tourist %d: %w", touristID, err)
	}
	return bookings, nil
}

// BookedSeats sums the party sizes already reserved on a tour for a
// given date, cancelled bookings excluded.
func (r *BookingRepository) BookedSeats(ctx context.Context, tourID int64, date time.Time) (int, error) {
	var seats int
	err := r.db.GetContext(ctx, &seats,
		`SELECT COALESCE(SUM(party_size), 0) FROM bookings
		 WHERE tour_id = $1 AND booked_for = $2 AND status <> 'cancelled'`,
		tourID, date)
	if err != nil {
		return 0, fmt.Errorf("count booked seats for tour %d: %w", tourID, err)
	}
	return seats, nil
}

// Create inserts a new booking and returns the stored row.
func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking,
		`INSERT INTO bookings (reference, tourist_id, tour_id, event_id, party_size, total_cents, status, booked_for)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+bookingColumns,
		b.Reference, b.TouristID, b.TourID, b.EventID, b.PartySize, b.TotalCents, b.Status, b.BookedFor)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// UpdateStatus moves a booking to a new lifecycle state.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
		 RETURNING `+bookingColumns,
		id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update booking %d status: %w", id, err)
	}
	return &booking, nil
}
