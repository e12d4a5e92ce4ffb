package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/eventface/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/eventface/internal/auth"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, actor *service.Actor, in service.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, actor *service.Actor, id uuid.UUID, in service.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) RegistrationLink(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockEventService) Scans(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error) {
	args := m.Called(ctx, eventID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScanLog), args.Error(1)
}

func newJSONBody(t *testing.T, body interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestEventHandler_Create(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "eventface", time.Hour)
	organizerID := uuid.New()
	token, _, err := jwtService.GenerateToken(organizerID, "org@example.com", "Org", domain.RoleEventOrganizer, nil)
	require.NoError(t, err)

	date := time.Date(2026, 11, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		token      string
		body       interface{}
		setupMock  func(*MockEventService)
		wantStatus int
	}{
		{
			name:  "created",
			token: token,
			body:  EventRequest{Title: "Feira de Ciências", Date: date, Facility: "Ginásio"},
			setupMock: func(m *MockEventService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(a *service.Actor) bool {
					return a != nil && a.ID == organizerID
				}), service.EventInput{Title: "Feira de Ciências", Date: date, Facility: "Ginásio"}).
					Return(&domain.Event{ID: uuid.New(), Title: "Feira de Ciências"}, nil)
			},
			wantStatus: 201,
		},
		{
			name:       "missing token",
			body:       EventRequest{Title: "Feira", Date: date, Facility: "Ginásio"},
			setupMock:  func(m *MockEventService) {},
			wantStatus: 401,
		},
		{
			name:       "missing title",
			token:      token,
			body:       map[string]interface{}{"date": date, "facility": "Ginásio"},
			setupMock:  func(m *MockEventService) {},
			wantStatus: 422,
		},
		{
			name:  "role not allowed",
			token: token,
			body:  EventRequest{Title: "Feira", Date: date, Facility: "Ginásio"},
			setupMock: func(m *MockEventService) {
				m.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrForbidden)
			},
			wantStatus: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEventService)
			tt.setupMock(svc)

			app := newTestApp()
			app.Post("/v1/events", middleware.Auth(jwtService, testLogger()), NewEventHandler(svc).Create)

			req := httptest.NewRequest("POST", "/v1/events", newJSONBody(t, tt.body))
			req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

func TestEventHandler_RegistrationLink(t *testing.T) {
	id := uuid.New()
	svc := new(MockEventService)
	svc.On("RegistrationLink", mock.Anything, id).Return("http://localhost:3000/events/"+id.String()+"/register", nil)

	app := newTestApp()
	app.Get("/v1/events/:id/registration-link", NewEventHandler(svc).RegistrationLink)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/events/"+id.String()+"/registration-link", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got RegistrationLinkResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Contains(t, got.Link, id.String()+"/register")
}

func TestEventHandler_Scans(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"default limit", "", defaultScanLimit},
		{"explicit limit", "?limit=5", 5},
		{"limit out of range", "?limit=100000", defaultScanLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEventService)
			svc.On("Scans", mock.Anything, "evt-1", tt.wantLimit).Return([]domain.ScanLog{}, nil)

			app := newTestApp()
			app.Get("/v1/events/:id/scans", NewEventHandler(svc).Scans)

			resp, err := app.Test(httptest.NewRequest("GET", "/v1/events/evt-1/scans"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

type MockOrganizerService struct {
	mock.Mock
}

func (m *MockOrganizerService) Register(ctx context.Context, creator *service.Actor, in service.RegisterInput) (*domain.Organizer, error) {
	args := m.Called(ctx, creator, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organizer), args.Error(1)
}

func (m *MockOrganizerService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockOrganizerService)
		wantStatus int
	}{
		{
			name: "valid credentials",
			body: LoginRequest{Email: "org@example.com", Password: "s3cret-pass"},
			setupMock: func(m *MockOrganizerService) {
				m.On("Login", mock.Anything, "org@example.com", "s3cret-pass").
					Return(&service.LoginResult{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)
			},
			wantStatus: 200,
		},
		{
			name: "wrong password",
			body: LoginRequest{Email: "org@example.com", Password: "bad"},
			setupMock: func(m *MockOrganizerService) {
				m.On("Login", mock.Anything, "org@example.com", "bad").Return(nil, domain.ErrInvalidCredentials)
			},
			wantStatus: 401,
		},
		{
			name:       "malformed email",
			body:       LoginRequest{Email: "org", Password: "x"},
			setupMock:  func(m *MockOrganizerService) {},
			wantStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrganizerService)
			tt.setupMock(svc)

			app := newTestApp()
			app.Post("/v1/auth/login", NewAuthHandler(svc).Login)

			req := httptest.NewRequest("POST", "/v1/auth/login", newJSONBody(t, tt.body))
			req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockOrganizerService)
	svc.On("Register", mock.Anything, (*service.Actor)(nil), mock.MatchedBy(func(in service.RegisterInput) bool {
		return in.Role == domain.RoleAdmin && in.Email == "root@example.com"
	})).Return(&domain.Organizer{ID: uuid.New(), Role: domain.RoleAdmin, Email: "root@example.com"}, nil)

	app := newTestApp()
	app.Post("/v1/auth/register", NewAuthHandler(svc).Register)

	body := RegisterRequest{Role: domain.RoleAdmin, Name: "Root", Email: "root@example.com", Password: "s3cret-pass"}
	req := httptest.NewRequest("POST", "/v1/auth/register", newJSONBody(t, body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "s3cret-pass")
	svc.AssertExpectations(t)
}
