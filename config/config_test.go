package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the developer's shell may have exported; getEnv
	// treats an empty value as unset.
	for _, key := range []string{
		"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "RABBITMQ_URL", "PMS_BASE_URL", "PMS_AUTH_CODE", "PMS_HOTEL_CODE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "retreat_backoffice", cfg.DBName)
	assert.Empty(t, cfg.PMSBaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PMS_BASE_URL", "https://pms.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "https://pms.example.com", cfg.PMSBaseURL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "retreat_backoffice",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=retreat_backoffice sslmode=disable",
		cfg.DSN(),
	)
}
