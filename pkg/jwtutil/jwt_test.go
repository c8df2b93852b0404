package jwtutil_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryansgue/scanela-sub001/pkg/jwtutil"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := jwtutil.GenerateToken("owner@example.com", userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := jwtutil.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestUserUUIDFallsBackToSubject(t *testing.T) {
	userID := uuid.New()
	claims := &jwtutil.UserClaims{}
	claims.Subject = userID.String()

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}
