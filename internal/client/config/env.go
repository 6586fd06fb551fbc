package config

import (
	"os"

	"github.com/dmitrijs2005/gynecare/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIURL       = "GYNECARE_API_URL"
	envClientID     = "GYNECARE_CLIENT_ID"
	envClientSecret = "GYNECARE_CLIENT_SECRET"
	envSessionDB    = "GYNECARE_SESSION_DB"
	envLogLevel     = "GYNECARE_LOG_LEVEL"
)

// parseEnv overlays Config with GYNECARE_* variables. A dotenv file named by
// -e/-env must exist; the implicit ./.env is optional. Variables already set
// in the process environment win over the file.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	setFromEnv(&cfg.APIBaseURL, envAPIURL)
	setFromEnv(&cfg.ClientID, envClientID)
	setFromEnv(&cfg.ClientSecret, envClientSecret)
	setFromEnv(&cfg.SessionDBPath, envSessionDB)
	setFromEnv(&cfg.LogLevel, envLogLevel)
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
