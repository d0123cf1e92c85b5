package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. A .env file
// loaded by the entrypoint (godotenv) ends up here too.
//
//	ADDRESS                       HTTP bind address
//	DATABASE_URL                  PostgreSQL DSN
//	SECRET_KEY                    JWT HMAC secret
//	ACCESS_TOKEN_EXPIRE_MINUTES   access token validity, minutes
//	CORS_ORIGIN                   comma-separated CORS origins
//	GOOGLE_USERINFO_ENDPOINT      introspection endpoint override
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		config.CORSAllowedOrigins = v
	}
	if v := os.Getenv("GOOGLE_USERINFO_ENDPOINT"); v != "" {
		config.GoogleUserInfoEndpoint = v
	}
}
