package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

type AttendeeRepository struct {
	pool PgxPool
}

func NewAttendeeRepository(pool PgxPool) *AttendeeRepository {
	return &AttendeeRepository{pool: pool}
}

func (r *AttendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (id, event_id, name, school, id_number, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.EventID,
		a.Name,
		a.School,
		a.IDNumber,
		a.Email,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create attendee: %w", err)
	}

	return nil
}

func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, school, id_number, email, created_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	attendees := make([]domain.Attendee, 0)
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.Name, &a.School, &a.IDNumber, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list attendees: scan: %w", err)
		}
		attendees = append(attendees, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	return attendees, nil
}
