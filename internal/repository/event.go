package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

type EventRepository struct {
	pool PgxPool
}

func NewEventRepository(pool PgxPool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, date, facility, description, created_by, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.Facility,
		event.Description,
		event.CreatedBy,
		event.CreatedByID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT id, title, date, facility, description, created_by, created_by_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var e domain.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&e.Facility,
		&e.Description,
		&e.CreatedBy,
		&e.CreatedByID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &e, nil
}

// List returns events, most recent date first
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `
		SELECT id, title, date, facility, description, created_by, created_by_id, created_at, updated_at
		FROM events
		ORDER BY date DESC, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Date,
			&e.Facility,
			&e.Description,
			&e.CreatedBy,
			&e.CreatedByID,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list events: scan: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, date = $3, facility = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.Facility,
		event.Description,
	).Scan(&event.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}
