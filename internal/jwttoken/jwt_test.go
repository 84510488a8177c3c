package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fastkyc/pkg/domain-errors"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("test-key", "fastkyc", "fastkyc-ops")

	token, err := svc.GenerateToken("ops@example.com", "reviewer", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "reviewer", claims.Role)
}

func TestService_RejectsExpired(t *testing.T) {
	svc := NewService("test-key", "fastkyc", "fastkyc-ops")

	token, err := svc.GenerateToken("ops@example.com", "reviewer", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestService_RejectsWrongKey(t *testing.T) {
	issuer := NewService("key-a", "fastkyc", "fastkyc-ops")
	verifier := NewService("key-b", "fastkyc", "fastkyc-ops")

	token, err := issuer.GenerateToken("ops@example.com", "reviewer", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}
