package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("static-verifier-test-secret-32b!")

func testIdentity() Identity {
	return Identity{
		Subject:       "google-sub-1",
		Email:         "ana@example.com",
		EmailVerified: true,
		GivenName:     "Ana",
		FamilyName:    "Costa",
		Picture:       "https://example.com/ana.jpg",
	}
}

func TestStaticVerifier_ValidToken(t *testing.T) {
	v := NewStaticVerifier(testSecret)

	token, err := SignAssertion(testSecret, testIdentity(), time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", got.Subject)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana", got.GivenName)
	assert.Equal(t, "https://example.com/ana.jpg", got.Picture)
	assert.True(t, got.EmailVerified)
}

func TestStaticVerifier_ExpiredToken(t *testing.T) {
	v := NewStaticVerifier(testSecret)

	token, err := SignAssertion(testSecret, testIdentity(), -time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestStaticVerifier_InvalidToken(t *testing.T) {
	v := NewStaticVerifier(testSecret)

	wrongSecret, err := SignAssertion([]byte("a-completely-different-secret!!!"), testIdentity(), time.Hour)
	require.NoError(t, err)

	missingClaims, err := SignAssertion(testSecret, Identity{Subject: "sub-only"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{name: "wrong secret", token: wrongSecret},
		{name: "missing email claim", token: missingClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
