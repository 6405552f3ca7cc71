package utils

import (
	"testing"

	"meetsplit-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupTestConfig() {
	config.AppConfig = &config.Config{
		JWTSecret:     "test-secret",
		AppName:       "MeetSplit",
		RetentionDays: 30,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupTestConfig()

	userID := uuid.New()
	token, err := GenerateToken(userID, "Guest_ab12")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, parsed)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	setupTestConfig()

	token, err := GenerateToken(uuid.New(), "Guest_ab12")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	setupTestConfig()

	_, err := ParseToken("not.a.token")
	require.Error(t, err)
}
