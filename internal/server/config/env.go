package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the environment onto the config. A .env file
// in the working directory is loaded first if present; real environment
// variables win over the file.
//
// Recognized variables:
//
//	RUN_ADDRESS          HTTP bind address
//	DATABASE_DSN         PostgreSQL DSN
//	JWT_SECRET           session token signing secret
//	TOKEN_TTL            session token lifetime (time.ParseDuration)
//	COOKIE_NAME          session cookie name
//	COOKIE_SECURE        "true" to mark the cookie Secure
//	CORS_ORIGIN          allowed SPA origin
//	S3_ACCESS_KEY        object storage access key
//	S3_SECRET_ACCESS_KEY object storage secret key
//	S3_BUCKET / S3_REGION / S3_ENDPOINT / S3_PUBLIC_BASE_URL
func parseEnv(config *Config) {
	// Missing .env is fine; the environment itself may carry everything.
	_ = godotenv.Load()

	setIfPresent := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setIfPresent("RUN_ADDRESS", &config.EndpointAddrHTTP)
	setIfPresent("DATABASE_DSN", &config.DatabaseDSN)
	setIfPresent("JWT_SECRET", &config.SecretKey)
	setIfPresent("COOKIE_NAME", &config.CookieName)
	setIfPresent("CORS_ORIGIN", &config.CORSOrigin)
	setIfPresent("S3_ACCESS_KEY", &config.S3AccessKey)
	setIfPresent("S3_SECRET_ACCESS_KEY", &config.S3SecretKey)
	setIfPresent("S3_BUCKET", &config.S3Bucket)
	setIfPresent("S3_REGION", &config.S3Region)
	setIfPresent("S3_ENDPOINT", &config.S3BaseEndpoint)
	setIfPresent("S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		config.CookieSecure = v == "true" || v == "1"
	}
	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
