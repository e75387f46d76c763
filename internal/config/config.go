// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/pocketledger/internal/report"
)

// DefaultEnvFile is read when it exists and no other file was requested.
const DefaultEnvFile = ".env"

// Config holds every setting the program reads at startup.
type Config struct {
	DBPath        string        `env:"DB_PATH" envDefault:"./data/pocketledger.db"`
	StatsFile     string        `env:"STATS_FILE" envDefault:"stats.txt"`
	StatsOutput   string        `env:"STATS_OUTPUT" envDefault:"console"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"warn"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
	MetricsAddr   string        `env:"METRICS_ADDR"`
	Autosave      bool          `env:"AUTOSAVE" envDefault:"true"`
}

// Load reads envFile into the process environment, then parses Config from
// it. A missing DefaultEnvFile is ignored; any other missing file is an
// error. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !(envFile == DefaultEnvFile && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// FromMap parses Config from vars only, ignoring the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if strings.TrimSpace(c.StatsFile) == "" {
		problems = append(problems, "STATS_FILE cannot be empty")
	}
	if _, err := report.ParseMode(c.StatsOutput); err != nil {
		problems = append(problems, fmt.Sprintf("invalid STATS_OUTPUT '%s': must be console or file", c.StatsOutput))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.SessionTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid SESSION_TTL %s: must be positive", c.SessionTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("invalid BCRYPT_COST %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
