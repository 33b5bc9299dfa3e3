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

const eventColumns = `id, producer_id, title, description, venue, starts_at,
	ends_at, price_cents, image_url, created_at, updated_at`

// EventRepository handles event data access operations.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindByID retrieves an event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	var event domain.Event
	err := r.db.GetContext(ctx, &event,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	return &event, nil
}

// ListUpcoming returns events that have not ended by the given time.
func (r *EventRepository) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error) {
	events := []domain.Event{}
	err := r.db.SelectContext(ctx, &events,
		`SELECT `+eventColumns+` FROM events WHERE ends_at > $1 ORDER BY starts_at`, after)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// ListByProducer returns all events owned by a producer.
func (r *EventRepository) ListByProducer(ctx context.Context, producerID int64) ([]domain.Event, error) {
	events := []domain.Event{}
	err := r.db.SelectContext(ctx, &events,
		`SELECT `+eventColumns+` FROM events WHERE producer_id = $1 ORDER BY starts_at`, producerID)
	if err != nil {
		return nil, fmt.Errorf("list events by producer %d: %w", producerID, err)
	}
	return events, nil
}

// Create inserts a new event and returns the stored row.
func (r *EventRepository) Create(ctx context.Context, e domain.Event) (*domain.Event, error) {
	var event domain.Event
	err := r.db.GetContext(ctx, &event,
		`INSERT INTO events (producer_id, title, description, venue, starts_at, ends_at, price_cents, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+eventColumns,
		e.ProducerID, e.Title, e.Description, e.Venue, e.StartsAt, e.EndsAt, e.PriceCents, e.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

// Update replaces the mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, e domain.Event) (*domain.Event, error) {
	var event domain.Event
	err := r.db.GetContext(ctx, &event,
		`UPDATE events
		 SET title = $2, description = $3, venue = $4, starts_at = $5,
		     ends_at = $6, price_cents = $7, image_url = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		e.ID, e.Title, e.Description, e.Venue, e.StartsAt, e.EndsAt, e.PriceCents, e.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event %d: %w", e.ID, err)
	}
	return &event, nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
