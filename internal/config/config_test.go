package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "./data/pocketledger.db", cfg.DBPath)
	assert.Equal(t, "stats.txt", cfg.StatsFile)
	assert.Equal(t, "console", cfg.StatsOutput)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.SessionSecret)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.MetricsAddr)
	assert.True(t, cfg.Autosave)
	assert.NoError(t, cfg.Validate())
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"DB_PATH":      "/tmp/x.db",
		"STATS_OUTPUT": "file",
		"SESSION_TTL":  "30m",
		"BCRYPT_COST":  "4",
		"AUTOSAVE":     "false",
		"METRICS_ADDR": ":9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "file", cfg.StatsOutput)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.False(t, cfg.Autosave)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestFromMapRejectsBadTypes(t *testing.T) {
	_, err := FromMap(map[string]string{"SESSION_TTL": "forever"})
	assert.Error(t, err)

	_, err = FromMap(map[string]string{"BCRYPT_COST": "ten"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.DBPath = " " },
			wantErr: []string{"DB_PATH cannot be empty"},
		},
		{
			name:    "bad output mode",
			mutate:  func(c *Config) { c.StatsOutput = "printer" },
			wantErr: []string{"invalid STATS_OUTPUT 'printer'"},
		},
		{
			name: "collects every problem",
			mutate: func(c *Config) {
				c.LogLevel = "loud"
				c.SessionTTL = 0
				c.BcryptCost = 1
				c.StatsFile = ""
			},
			wantErr: []string{
				"invalid LOG_LEVEL 'loud'",
				"invalid SESSION_TTL 0s",
				"invalid BCRYPT_COST 1",
				"STATS_FILE cannot be empty",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromMap(map[string]string{})
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POCKETLEDGER_TEST_UNUSED=1\nSTATS_FILE=from-file.txt\n"), 0600))

	// godotenv does not override variables that are already set.
	t.Setenv("STATS_FILE", "")
	os.Unsetenv("STATS_FILE")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.txt", cfg.StatsFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	t.Cleanup(func() {
		os.Unsetenv("POCKETLEDGER_TEST_UNUSED")
		os.Unsetenv("STATS_FILE")
	})
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}
