package config

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// jsonDuration accepts both string values such as "30m" and integer
// nanoseconds when unmarshalling durations from JSON.
type jsonDuration struct {
	time.Duration
}

func (d *jsonDuration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// jsonConfig is an intermediate DTO used only for reading the JSON
// configuration file; its values are copied into the runtime Config.
type jsonConfig struct {
	EndpointAddr                string       `json:"endpoint_addr"`
	DatabaseDSN                 string       `json:"database_dsn"`
	SecretKey                   string       `json:"secret_key"`
	AccessTokenValidityDuration jsonDuration `json:"access_token_validity_duration"`
	CORSAllowedOrigins          string       `json:"cors_allowed_origins"`
	GoogleUserInfoEndpoint      string       `json:"google_userinfo_endpoint"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flag into the provided Config. When no file is named, nothing
// is loaded. An unreadable or invalid file panics: a named config that
// cannot be applied should not be silently ignored.
func parseJSON(config *Config) {
	jsonConfigFile := jsonConfigPath()
	if jsonConfigFile == "" {
		return
	}

	c := &jsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.GoogleUserInfoEndpoint != "" {
		config.GoogleUserInfoEndpoint = c.GoogleUserInfoEndpoint
	}
}
