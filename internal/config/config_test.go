package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "wedding"
dbname = "wedding"

[auth]
jwt_secret = "secret"
admin_email = " Admin@Example.com "
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, AuthProviderDirectory, cfg.Auth.Provider)
	assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
	assert.Equal(t, PaymentProviderMock, cfg.Payment.Provider)
	assert.Equal(t, 90, cfg.Booking.HorizonDays)
	assert.Equal(t, "INR", cfg.Booking.Currency)
	assert.Equal(t, 5, cfg.Reviews.MaxRetries)
	assert.False(t, cfg.Reviews.RequireCompletedBooking)
	assert.False(t, cfg.Redis.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "db-env")

	path := writeConfig(t, `
[auth]
jwt_secret = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "db-env", cfg.Database.Password)
}

func TestLoad_MemoryUsers(t *testing.T) {
	path := writeConfig(t, `
[auth]
provider = "memory"
jwt_secret = "secret"

[[auth.users]]
id = 1
email = "user@example.com"
password = "password1"
display_name = "User"
role = "user"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Auth.Users, 1)
	assert.Equal(t, "user@example.com", cfg.Auth.Users[0].Email)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown auth provider", func(c *Config) { c.Auth.Provider = "ldap" }},
		{"unknown payment provider", func(c *Config) { c.Payment.Provider = "paypal" }},
		{"http gateway without url", func(c *Config) { c.Payment.Provider = PaymentProviderHTTP }},
		{"negative horizon", func(c *Config) { c.Booking.HorizonDays = -1 }},
		{"negative retries", func(c *Config) { c.Reviews.MaxRetries = -3 }},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"success rate above one", func(c *Config) { c.Payment.SuccessRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Auth: AuthConfig{JWTSecret: "secret"}}
			cfg.applyDefaults()
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
