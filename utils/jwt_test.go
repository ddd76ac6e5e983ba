package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "ADMIN", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "ADMIN", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, time.Unix(int64(exp), 0), time.Now())
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "AGENT", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", "secret")
	assert.Error(t, err)
}
