package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ADDR", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.UseMockData)
	assert.False(t, cfg.UseDatabase())
	assert.Equal(t, 1, cfg.DBPoolMin)
	assert.Equal(t, 5, cfg.DBPoolMax)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestUseMockDataAcceptsYes(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"yes", true},
		{"1", true},
		{"true", true},
		{"no", false},
		{"0", false},
		{"garbage", true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Setenv("USE_MOCK_DATA", tc.raw)
			assert.Equal(t, tc.want, Load().UseMockData)
		})
	}
}

func TestUseDatabaseRequiresURL(t *testing.T) {
	cfg := Config{UseMockData: false, DatabaseURL: "postgres://localhost/hrpay"}
	assert.True(t, cfg.UseDatabase())

	cfg.UseMockData = true
	assert.False(t, cfg.UseDatabase())
}

func TestValidate(t *testing.T) {
	base := Config{
		UseMockData:        true,
		DBPoolMin:          1,
		DBPoolMax:          5,
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 10,
	}

	t.Run("missing database url", func(t *testing.T) {
		cfg := base
		cfg.UseMockData = false
		require.Error(t, cfg.Validate())
	})
	t.Run("production without secret", func(t *testing.T) {
		cfg := base
		cfg.Environment = "production"
		require.Error(t, cfg.Validate())
	})
	t.Run("auth without admin password", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "secret"
		require.Error(t, cfg.Validate())
	})
	t.Run("pool bounds", func(t *testing.T) {
		cfg := base
		cfg.DBPoolMin = 6
		require.Error(t, cfg.Validate())
	})
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, base.Validate())
	})
}
