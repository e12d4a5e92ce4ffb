package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail = "org@eventface.dev"
	testName  = "Maria"
	testRole  = "event_organizer"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret-key", "eventface-test", time.Hour)
	id := uuid.New()

	token, expiresAt, err := service.GenerateToken(id, testEmail, testName, testRole, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.OrganizerID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, testName, claims.Name)
	assert.Equal(t, testRole, claims.Role)
	assert.Equal(t, "eventface-test", claims.Issuer)
}

func TestJWTService_GenerateToken_CappedByNotAfter(t *testing.T) {
	service := NewJWTService("test-secret-key", "eventface-test", 24*time.Hour)
	notAfter := time.Now().Add(time.Hour).Truncate(time.Second)

	_, expiresAt, err := service.GenerateToken(uuid.New(), testEmail, testName, testRole, &notAfter)

	require.NoError(t, err)
	assert.Equal(t, notAfter, expiresAt)
}

func TestJWTService_ValidateToken_Invalid(t *testing.T) {
	service := NewJWTService("test-secret-key", "eventface-test", time.Hour)

	otherSecret := NewJWTService("other-secret", "eventface-test", time.Hour)
	foreign, _, err := otherSecret.GenerateToken(uuid.New(), testEmail, testName, testRole, nil)
	require.NoError(t, err)

	otherIssuer := NewJWTService("test-secret-key", "someone-else", time.Hour)
	wrongIssuer, _, err := otherIssuer.GenerateToken(uuid.New(), testEmail, testName, testRole, nil)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"organizer_id": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{name: "invalid token format", token: "invalid.token.format", expectedErr: ErrInvalidToken},
		{name: "empty token", token: "", expectedErr: ErrInvalidToken},
		{name: "signed with another secret", token: foreign, expectedErr: ErrInvalidToken},
		{name: "wrong issuer", token: wrongIssuer, expectedErr: ErrInvalidToken},
		{name: "none algorithm", token: noneToken, expectedErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret-key", "eventface-test", -time.Minute)

	token, _, err := service.GenerateToken(uuid.New(), testEmail, testName, testRole, nil)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
