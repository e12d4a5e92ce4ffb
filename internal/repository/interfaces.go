package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// FaceRecordRepositoryInterface defines operations for enrolled face records
type FaceRecordRepositoryInterface interface {
	Create(ctx context.Context, record *domain.FaceRecord) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FaceRecord, error)
	List(ctx context.Context, eventID string) ([]domain.FaceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventRepositoryInterface defines operations for event data access
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
}

// AttendeeRepositoryInterface defines operations for attendee data access
type AttendeeRepositoryInterface interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Attendee, error)
}

// OrganizerRepositoryInterface defines operations for organizer accounts
type OrganizerRepositoryInterface interface {
	Create(ctx context.Context, organizer *domain.Organizer) error
	GetByEmail(ctx context.Context, email string) (*domain.Organizer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organizer, error)
	Count(ctx context.Context) (int, error)
}

// ScanLogRepositoryInterface defines operations for the verification scan log
type ScanLogRepositoryInterface interface {
	Create(ctx context.Context, scan *domain.ScanLog) error
	ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error)
}
