package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "50051", cfg.App.GRPCPort)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
	assert.Equal(t, 20, cfg.RateLimit.BurstCapacity)
	assert.Equal(t, "user-service", cfg.Logger.ServiceName)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "DB_HOST=db.internal\nDB_NAME=users\nHTTP_PORT=9090\nLOG_FORMAT=JSON\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	t.Setenv("DB_NAME", "from_env")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "from_env", cfg.DB.Name)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfig_ProductionLoggerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "same ports",
			mutate:  func(c *Config) { c.App.HTTPPort = c.App.GRPCPort },
			wantErr: "HTTPPort",
		},
		{
			name:    "non numeric db port",
			mutate:  func(c *Config) { c.DB.Port = "abc" },
			wantErr: "Config.DB.Port",
		},
		{
			name:    "bad ssl mode",
			mutate:  func(c *Config) { c.DB.SSLMode = "sometimes" },
			wantErr: "SSLMode",
		},
		{
			name:    "idle above open",
			mutate:  func(c *Config) { c.DB.MaxIdleConns = c.DB.MaxOpenConns + 1 },
			wantErr: "MaxIdleConns",
		},
		{
			name:    "redis host required when enabled",
			mutate:  func(c *Config) { c.Redis.Host = "" },
			wantErr: "Redis.Host",
		},
		{
			name:    "zero rps",
			mutate:  func(c *Config) { c.RateLimit.RequestsPerSecond = 0 },
			wantErr: "RequestsPerSecond",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logger.Format = "xml" },
			wantErr: "Format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("redis host optional when disabled", func(t *testing.T) {
		cfg := valid(t)
		cfg.Redis.Enabled = false
		cfg.Redis.Host = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}
