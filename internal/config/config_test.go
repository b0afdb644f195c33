package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresPasswordSalt(t *testing.T) {
	// No accounts can exist without the process-wide salt; startup must fail
	// loudly rather than run with an empty one.
	t.Setenv("USER_PASSWORD_SALT", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USER_PASSWORD_SALT")
}

func TestLoadConfig_DefaultsWithSalt(t *testing.T) {
	t.Setenv("USER_PASSWORD_SALT", "pepper")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8420", cfg.Port)
	assert.Equal(t, "pepper", cfg.PasswordSalt)
	assert.Equal(t, 300, cfg.LoginWindowSec)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("USER_PASSWORD_SALT", "pepper")
	t.Setenv("PORT", "9000")
	t.Setenv("LOGIN_WINDOW_SEC", "60")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 60, cfg.LoginWindowSec)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:           "8420",
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			PasswordSalt:   "pepper",
			LoginWindowSec: 300,
			DBPassword:     "s3cure-db-pass",
			DBSSLMode:      "require",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("zero login window", func(t *testing.T) {
		cfg := base()
		cfg.LoginWindowSec = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects the default jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects a weak db password", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})
}
