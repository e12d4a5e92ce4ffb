package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	app := fiber.New()
	handler := NewHealthHandler("1.0.0", nil)
	app.Get("/health", handler.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result HealthResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "1.0.0", result.Version)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		wantStatus int
		wantState  string
	}{
		{name: "database reachable", wantStatus: 200, wantState: "ready"},
		{name: "database down", dbErr: errors.New("connection refused"), wantStatus: 503, wantState: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			handler := NewHealthHandler("1.0.0", map[string]Checker{
				"database": CheckerFunc(func(ctx context.Context) error { return tt.dbErr }),
			})
			app.Get("/ready", handler.Ready)

			resp, err := app.Test(httptest.NewRequest("GET", "/ready", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var result HealthResponse
			require.NoError(t, json.Unmarshal(body, &result))
			assert.Equal(t, tt.wantState, result.Status)
			assert.Contains(t, result.Checks, "database")
		})
	}
}
