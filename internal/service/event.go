package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// Actor is the authenticated organizer performing a call
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}

func (a *Actor) canManageEvents() bool {
	if a == nil {
		return false
	}
	o := domain.Organizer{Role: a.Role}
	return o.CanManageEvents()
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
}

type ScanLogReader interface {
	ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error)
}

// EventInput carries the editable fields of an event
type EventInput struct {
	Title       string
	Date        time.Time
	Facility    string
	Description string
}

type EventService struct {
	events  EventRepository
	scans   ScanLogReader
	baseURL string
}

func NewEventService(events EventRepository, scans ScanLogReader, publicBaseURL string) *EventService {
	return &EventService{
		events:  events,
		scans:   scans,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *EventService) Create(ctx context.Context, actor *Actor, in EventInput) (*domain.Event, error) {
	if !actor.canManageEvents() {
		return nil, domain.ErrForbidden
	}

	event := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Date:        in.Date,
		Facility:    strings.TrimSpace(in.Facility),
		Description: in.Description,
		CreatedBy:   actor.Name,
		CreatedByID: &actor.ID,
	}
	if err := event.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) Update(ctx context.Context, actor *Actor, id uuid.UUID, in EventInput) (*domain.Event, error) {
	if !actor.canManageEvents() {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(in.Title)
	event.Date = in.Date
	event.Facility = strings.TrimSpace(in.Facility)
	event.Description = in.Description
	if err := event.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// RegistrationLink returns the public page where attendees of the event
// register themselves
func (s *EventService) RegistrationLink(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/events/%s/register", s.baseURL, id), nil
}

// Scans returns the latest verification scans of an event
func (s *EventService) Scans(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error) {
	return s.scans.ListByEvent(ctx, eventID, limit)
}
