package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/auth"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/ratelimit"
)

type OrganizerRepository interface {
	Create(ctx context.Context, organizer *domain.Organizer) error
	GetByEmail(ctx context.Context, email string) (*domain.Organizer, error)
	Count(ctx context.Context) (int, error)
}

// LoginThrottle counts sign-in attempts per key. Hit fails with
// ratelimit.ErrLimitExceeded once the key is over limit.
type LoginThrottle interface {
	Hit(ctx context.Context, key string, limit int) (int, error)
	Reset(ctx context.Context, key string) error
}

// RegisterInput creates an organizer account
type RegisterInput struct {
	Role           string
	Name           string
	Email          string
	Password       string
	ActivationDate *time.Time
	ExpirationDate *time.Time
}

// LoginResult is a signed session for an organizer
type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Organizer *domain.Organizer `json:"organizer"`
}

type OrganizerService struct {
	organizers OrganizerRepository
	hasher     auth.PasswordHasher
	tokens     *auth.JWTService
	logger     *slog.Logger
	now        func() time.Time

	throttle    LoginThrottle
	maxAttempts int
}

func NewOrganizerService(
	organizers OrganizerRepository,
	hasher auth.PasswordHasher,
	tokens *auth.JWTService,
	logger *slog.Logger,
) *OrganizerService {
	return &OrganizerService{
		organizers: organizers,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
		now:        time.Now,
	}
}

// WithLoginThrottle limits sign-in attempts per email to maxAttempts in the
// throttle window. A successful login resets the count.
func (s *OrganizerService) WithLoginThrottle(throttle LoginThrottle, maxAttempts int) *OrganizerService {
	s.throttle = throttle
	s.maxAttempts = maxAttempts
	return s
}

// Register creates an account. Admin accounts can only be created by
// another admin, except for the very first account of the installation.
func (s *OrganizerService) Register(ctx context.Context, creator *Actor, in RegisterInput) (*domain.Organizer, error) {
	o := &domain.Organizer{
		Role:           in.Role,
		Name:           strings.TrimSpace(in.Name),
		Email:          domain.NormalizeEmail(in.Email),
		ActivationDate: in.ActivationDate,
		ExpirationDate: in.ExpirationDate,
	}
	if o.Role == domain.RoleAdmin {
		o.ActivationDate = nil
		o.ExpirationDate = nil
	}

	if err := o.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("password must have at least 8 characters"))
	}

	if o.Role == domain.RoleAdmin && (creator == nil || creator.Role != domain.RoleAdmin) {
		n, err := s.organizers.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.ErrForbidden
		}
	}

	if creator != nil {
		id := creator.ID
		o.CreatedByID = &id
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	o.PasswordHash = hash

	if err := s.organizers.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("organizer registered",
		slog.String("organizer_id", o.ID.String()),
		slog.String("role", o.Role),
	)

	return o, nil
}

// Login checks credentials and the activation window and issues a token
// that expires no later than the account itself
func (s *OrganizerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, err
	}

	o, err := s.organizers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizerNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.ComparePassword(o.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !o.IsActiveAt(s.now()) {
		return nil, domain.ErrOrganizerInactive
	}

	token, expiresAt, err := s.tokens.GenerateToken(o.ID, o.Email, o.Name, o.Role, o.ExpirationDate)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, loginKey(email)); err != nil {
			s.logger.Warn("failed to reset login attempts", slog.String("error", err.Error()))
		}
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Organizer: o}, nil
}

// checkThrottle fails open when the counter store is unreachable
func (s *OrganizerService) checkThrottle(ctx context.Context, email string) error {
	if s.throttle == nil {
		return nil
	}

	_, err := s.throttle.Hit(ctx, loginKey(email), s.maxAttempts)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ratelimit.ErrLimitExceeded):
		s.logger.Warn("login attempts exceeded", slog.String("email", email))
		return domain.ErrRateLimitExceeded.WithError(err)
	default:
		s.logger.Warn("login throttle unavailable", slog.String("error", err.Error()))
		return nil
	}
}

func loginKey(email string) string {
	return "login:" + email
}

// ActorFromClaims converts validated token claims into an Actor
func ActorFromClaims(c *auth.Claims) *Actor {
	if c == nil || c.OrganizerID == uuid.Nil {
		return nil
	}
	return &Actor{ID: c.OrganizerID, Name: c.Name, Role: c.Role}
}
