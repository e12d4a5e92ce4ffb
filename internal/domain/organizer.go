package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organizer roles
const (
	RoleAdmin           = "admin"
	RoleEventOrganizer  = "event_organizer"
	RoleEventMonitoring = "event_monitoring"
)

var validRoles = map[string]bool{
	RoleAdmin:           true,
	RoleEventOrganizer:  true,
	RoleEventMonitoring: true,
}

// Organizer representa um usuário que gerencia ou monitora eventos
type Organizer struct {
	ID             uuid.UUID  `json:"id"`
	Role           string     `json:"role"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	ActivationDate *time.Time `json:"activation_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	CreatedByID    *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Validate verifica se o organizador é válido
func (o *Organizer) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("organizer name cannot be empty")
	}

	if !IsValidEmail(o.Email) {
		return errors.New("organizer email is invalid")
	}

	if !validRoles[o.Role] {
		return errors.New("invalid organizer role")
	}

	// Admins never expire; everyone else needs an access window.
	if o.Role != RoleAdmin {
		if o.ActivationDate == nil || o.ExpirationDate == nil {
			return errors.New("activation and expiration dates are required")
		}
		if o.ExpirationDate.Before(*o.ActivationDate) {
			return errors.New("expiration date must be after activation date")
		}
	}

	return nil
}

// IsActiveAt reports whether the organizer may sign in at t
func (o *Organizer) IsActiveAt(t time.Time) bool {
	if o.Role == RoleAdmin {
		return true
	}
	if o.ActivationDate == nil || o.ExpirationDate == nil {
		return false
	}
	return !t.Before(*o.ActivationDate) && !t.After(*o.ExpirationDate)
}

// CanManageEvents reports whether the role may create or change events
func (o *Organizer) CanManageEvents() bool {
	return o.Role == RoleAdmin || o.Role == RoleEventOrganizer
}

// IsValidRole verifica se o papel é válido
func IsValidRole(role string) bool {
	return validRoles[role]
}
