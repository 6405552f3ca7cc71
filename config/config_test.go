package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	Load()

	if AppConfig.Port != "8080" {
		t.Errorf("Expected PORT default '8080', got '%s'", AppConfig.Port)
	}
	if AppConfig.AppName != "MeetSplit" {
		t.Errorf("Expected APP_NAME default 'MeetSplit', got '%s'", AppConfig.AppName)
	}
	if AppConfig.RetentionDays != 30 {
		t.Errorf("Expected RETENTION_DAYS default 30, got %d", AppConfig.RetentionDays)
	}
	if AppConfig.FirebaseCredPath != "" {
		t.Errorf("Expected FIREBASE_CREDENTIALS default empty, got '%s'", AppConfig.FirebaseCredPath)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "9090")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("RETENTION_DAYS", "7")
	defer os.Clearenv()

	Load()

	if AppConfig.Port != "9090" {
		t.Errorf("Expected PORT '9090', got '%s'", AppConfig.Port)
	}
	if AppConfig.JWTSecret != "test-secret" {
		t.Errorf("Expected JWT_SECRET 'test-secret', got '%s'", AppConfig.JWTSecret)
	}
	if AppConfig.RetentionDays != 7 {
		t.Errorf("Expected RETENTION_DAYS 7, got %d", AppConfig.RetentionDays)
	}
}

func TestLoad_RejectsInvalidRetention(t *testing.T) {
	os.Clearenv()
	os.Setenv("RETENTION_DAYS", "not-a-number")
	defer os.Clearenv()

	Load()

	if AppConfig.RetentionDays != 30 {
		t.Errorf("Expected fallback 30 for invalid RETENTION_DAYS, got %d", AppConfig.RetentionDays)
	}

	os.Setenv("RETENTION_DAYS", "-5")
	Load()

	if AppConfig.RetentionDays != 30 {
		t.Errorf("Expected fallback 30 for negative RETENTION_DAYS, got %d", AppConfig.RetentionDays)
	}
}
