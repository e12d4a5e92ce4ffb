package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event representa um evento criado por um organizador
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Date        time.Time  `json:"date"`
	Facility    string     `json:"facility"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate verifica se o evento é válido
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title cannot be empty")
	}

	if e.Date.IsZero() {
		return errors.New("event date is required")
	}

	if strings.TrimSpace(e.Facility) == "" {
		return errors.New("event facility cannot be empty")
	}

	return nil
}

// Attendee is a person registered for an event without biometric enrollment
type Attendee struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	School    string    `json:"school"`
	IDNumber  string    `json:"id_number"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanLog records a successful verification at an event entrance.
// FaceRecordID is nil once the matched record has been deleted.
type ScanLog struct {
	ID           uuid.UUID  `json:"id"`
	EventID      string     `json:"event_id"`
	FaceRecordID *uuid.UUID `json:"face_record_id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	School       string     `json:"school"`
	Similarity   float64    `json:"similarity"`
	ScannedAt    time.Time  `json:"scanned_at"`
}
