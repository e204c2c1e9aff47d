package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "booking"
dbname = "booking"

[admin]
username = "admin"

[license]
server_url = "https://license.example.com/validate"
site_url = "https://salon.example.com"

[cors]
allowed_origins = ["https://salon.example.com"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDBPassword, "db-secret")
	t.Setenv(EnvAdminPasswordHash, "$2a$10$abcdefghijklmnopqrstuu")
	t.Setenv(EnvAdminJWTSecret, "jwt-secret")
	t.Setenv(EnvLicenseSecret, "license-secret")
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	setSecrets(t)

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "db-secret", cfg.Database.Password)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "jwt-secret", cfg.Admin.JWTSecret)
	assert.Equal(t, 12, cfg.Admin.TokenTTLHours)
	assert.Equal(t, "license-secret", cfg.License.Secret)
	assert.Equal(t, 7, cfg.License.GracePeriodDays)
	assert.Equal(t, 24, cfg.License.RecheckIntervalHours)
	assert.Equal(t, "0 3,15 * * *", cfg.License.RecheckSchedule)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://salon.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFromEnv(t *testing.T) {
	setSecrets(t)
	t.Setenv(EnvHTTPPort, "7070")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_BadPortFromEnv(t *testing.T) {
	setSecrets(t)
	t.Setenv(EnvHTTPPort, "http")

	_, err := Load(writeConfig(t, minimalConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingSecrets(t *testing.T) {
	for _, env := range []string{EnvAdminPasswordHash, EnvAdminJWTSecret, EnvLicenseSecret} {
		t.Run(env, func(t *testing.T) {
			setSecrets(t)
			t.Setenv(env, "")

			_, err := Load(writeConfig(t, minimalConfig))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "booking",
		Password: "secret",
		DBName:   "calendar",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=booking password=secret dbname=calendar sslmode=require", d.DSN())
}
