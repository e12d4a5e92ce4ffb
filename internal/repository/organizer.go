package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// bootstrapAdminIndex allows a single admin without a creator
const bootstrapAdminIndex = "idx_organizers_bootstrap_admin"

const selectOrganizer = `
	SELECT id, role, name, email, password_hash, activation_date, expiration_date, created_by_id, created_at, updated_at
	FROM organizers
`

type OrganizerRepository struct {
	pool PgxPool
}

func NewOrganizerRepository(pool PgxPool) *OrganizerRepository {
	return &OrganizerRepository{pool: pool}
}

func (r *OrganizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	query := `
		INSERT INTO organizers (id, role, name, email, password_hash, activation_date, expiration_date, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		o.ID,
		o.Role,
		o.Name,
		o.Email,
		o.PasswordHash,
		o.ActivationDate,
		o.ExpirationDate,
		o.CreatedByID,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isConstraintViolation(err, bootstrapAdminIndex) {
			return domain.ErrForbidden
		}
		if isUniqueViolation(err) {
			return domain.ErrOrganizerExists
		}
		return fmt.Errorf("create organizer: %w", err)
	}

	return nil
}

func (r *OrganizerRepository) GetByEmail(ctx context.Context, email string) (*domain.Organizer, error) {
	return r.getOne(ctx, selectOrganizer+`WHERE lower(email) = lower($1)`, email)
}

func (r *OrganizerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organizer, error) {
	return r.getOne(ctx, selectOrganizer+`WHERE id = $1`, id)
}

func (r *OrganizerRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Organizer, error) {
	var o domain.Organizer
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&o.ID,
		&o.Role,
		&o.Name,
		&o.Email,
		&o.PasswordHash,
		&o.ActivationDate,
		&o.ExpirationDate,
		&o.CreatedByID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrganizerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organizer: %w", err)
	}

	return &o, nil
}

// Count returns how many organizer accounts exist
func (r *OrganizerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM organizers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count organizers: %w", err)
	}
	return n, nil
}
