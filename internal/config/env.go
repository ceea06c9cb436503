package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "CASEODDS_LOG_LEVEL"
	EnvLogFormat = "CASEODDS_LOG_FORMAT"
	EnvAddr      = "CASEODDS_ADDR"
	EnvWorkers   = "CASEODDS_WORKERS"
	EnvSource    = "CASEODDS_RNG"
	EnvSeed      = "CASEODDS_SEED"
)

// LoadDotEnv loads .env files if they exist; real environment variables win.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		// missing files are fine, the environment may be set directly
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides settings from the environment and revalidates them.
func ApplyEnv(s Settings) (Settings, error) {
	s.Log.Level = getEnv(EnvLogLevel, s.Log.Level)
	s.Log.Format = getEnv(EnvLogFormat, s.Log.Format)
	s.Server.Addr = getEnv(EnvAddr, s.Server.Addr)
	s.Source = getEnv(EnvSource, s.Source)

	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s value: %w", EnvWorkers, err)
		}
		s.Workers = n
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		s.Seed = n
	}

	if s.Source != "" && s.Source != generator.SourceParkMiller && s.Source != generator.SourcePCG {
		return Settings{}, fmt.Errorf("invalid %s value: %q", EnvSource, s.Source)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
