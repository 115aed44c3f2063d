// Package config loads the facade's construction-time tunables from the
// environment, the way the teacher's internal/config loads encryption and
// WAL settings for morfx.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the facade's construction-time tunables.
type Config struct {
	LoopCap          int
	ExpansionCeiling int
	DBDSN            string
	Debug            bool
}

const (
	defaultLoopCap          = 200
	defaultExpansionCeiling = 50000
	defaultDBDSN            = "verdicts.db"
)

// Load sources a .env file if present (errors ignored, matching the
// teacher's db/sqlite_integration_test.go), then reads PQUERY_* env vars
// over top of package defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LoopCap:          defaultLoopCap,
		ExpansionCeiling: defaultExpansionCeiling,
		DBDSN:            defaultDBDSN,
	}

	if v := os.Getenv("PQUERY_LOOP_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoopCap = n
		}
	}

	if v := os.Getenv("PQUERY_EXPANSION_CEILING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ExpansionCeiling = n
		}
	}

	if v := os.Getenv("PQUERY_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}

	if v := os.Getenv("PQUERY_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}
