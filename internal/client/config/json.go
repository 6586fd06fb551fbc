package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gynecare/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the current value untouched.
type JsonConfig struct {
	APIBaseURL    string `json:"api_base_url"`
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret"`
	SessionDBPath string `json:"session_db_path"`
	LogLevel      string `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file given with
// -c or -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.ClientID, jc.ClientID)
	overlay(&cfg.ClientSecret, jc.ClientSecret)
	overlay(&cfg.SessionDBPath, jc.SessionDBPath)
	overlay(&cfg.LogLevel, jc.LogLevel)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
