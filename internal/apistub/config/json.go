package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/flagx"
)

// JsonConfig is the JSON form of Config. The token validity is a
// time.ParseDuration string such as "15m".
type JsonConfig struct {
	ListenAddr                  string `json:"listen_addr"`
	SecretKey                   string `json:"secret_key"`
	AccessTokenValidityDuration string `json:"access_token_validity_duration"`
	ClientID                    string `json:"client_id"`
	ClientSecret                string `json:"client_secret"`
	LogLevel                    string `json:"log_level"`
}

// parseJson loads the file given with -c or -config into config. Empty
// fields keep their current value. Panics on read, unmarshal or duration
// errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ClientID, c.ClientID)
	setString(&config.ClientSecret, c.ClientSecret)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != "" {
		d, err := time.ParseDuration(c.AccessTokenValidityDuration)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
