package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// defaultIDNumber is stored when the attendee gives no document number
const defaultIDNumber = " "

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Attendee, error)
}

type EventGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

// AttendeeInput is a registration without a face
type AttendeeInput struct {
	Name     string
	School   string
	IDNumber string
	Email    string
}

type AttendeeService struct {
	attendees AttendeeRepository
	events    EventGetter
}

func NewAttendeeService(attendees AttendeeRepository, events EventGetter) *AttendeeService {
	return &AttendeeService{attendees: attendees, events: events}
}

func (s *AttendeeService) Register(ctx context.Context, eventID uuid.UUID, in AttendeeInput) (*domain.Attendee, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	a := &domain.Attendee{
		EventID:  eventID,
		Name:     strings.TrimSpace(in.Name),
		School:   strings.TrimSpace(in.School),
		IDNumber: in.IDNumber,
		Email:    domain.NormalizeEmail(in.Email),
	}
	if a.IDNumber == "" {
		a.IDNumber = defaultIDNumber
	}

	if a.Name == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("attendee name cannot be empty"))
	}
	if !domain.IsValidEmail(a.Email) {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("invalid email %q", in.Email))
	}

	if err := s.attendees.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *AttendeeService) List(ctx context.Context, eventID uuid.UUID) ([]domain.Attendee, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendees.ListByEvent(ctx, eventID)
}
