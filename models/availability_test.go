package models

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func bindAvailability(t *testing.T, body string) (UpdateAvailabilityRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("PUT", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req UpdateAvailabilityRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestUpdateAvailabilityRequest_BindsDates(t *testing.T) {
	req, err := bindAvailability(t, `{"dates":{"2024-06-01":{"is_available":true,"time_slots":["evening"]}}}`)
	require.NoError(t, err)
	require.Len(t, req.Dates, 1)
	require.True(t, req.Dates["2024-06-01"].IsAvailable)
}

func TestUpdateAvailabilityRequest_AcceptsEmptyMap(t *testing.T) {
	// Submitting an empty map clears the caller's availability.
	req, err := bindAvailability(t, `{"dates":{}}`)
	require.NoError(t, err)
	require.Empty(t, req.Dates)
}

func TestUpdateAvailabilityRequest_AcceptsMissingDates(t *testing.T) {
	req, err := bindAvailability(t, `{}`)
	require.NoError(t, err)
	require.Empty(t, req.Dates)
}
