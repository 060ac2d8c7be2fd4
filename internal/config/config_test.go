package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "authgate.db", cfg.DatabasePath)
	assert.Equal(t, "secretKey", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 24*time.Hour, cfg.CookieExpire)
	assert.Equal(t, 10*time.Minute, cfg.ResetTokenValidity)
	assert.NotEmpty(t, cfg.DefaultProfilePicture)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.Production())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("COOKIE_EXPIRE_HOURS", "3")
	t.Setenv("RESET_TOKEN_VALIDITY", "300")
	t.Setenv("ENVIRONMENT", EnvProduction)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 3*time.Hour, cfg.CookieExpire)
	assert.Equal(t, 5*time.Minute, cfg.ResetTokenValidity)
	assert.True(t, cfg.Production())
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig([]string{"-a", ":7070", "-s", "flag-secret", "-t", "1"})
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Address)
	assert.Equal(t, "flag-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpire)
}

func TestLoadConfig_InvalidEnvNumber(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOURS", "not-a-number")

	_, err := LoadConfig(nil)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	_, err := LoadConfig([]string{"-unknown-flag"})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty address",
			mutate:  func(c *Config) { c.Address = "" },
			wantErr: true,
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: true,
		},
		{
			name:    "empty jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: true,
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Environment = "staging" },
			wantErr: true,
		},
		{
			name:   "production environment",
			mutate: func(c *Config) { c.Environment = EnvProduction },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
