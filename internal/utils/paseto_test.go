package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoMaker_RoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(GenerateSymmetricKey())
	require.NoError(t, err)

	token := maker.CreateToken(TokenClaims{
		UserID:    "user-1",
		OrgID:     "org-1",
		Email:     "a@example.com",
		SessionID: "sess-1",
	}, time.Hour)

	claims, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrgID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestPasetoMaker_RejectsForeignKey(t *testing.T) {
	issuer, _ := NewPasetoMaker(GenerateSymmetricKey())
	verifier, _ := NewPasetoMaker(GenerateSymmetricKey())

	token := issuer.CreateToken(TokenClaims{UserID: "user-1"}, time.Hour)

	_, err := verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestNewPasetoMaker_InvalidKey(t *testing.T) {
	_, err := NewPasetoMaker("not-hex")
	assert.Error(t, err)
}
