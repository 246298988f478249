package config

import (
	"encoding/json"
	"os"

	"github.com/Amrit-pandey/airbnb-clone/internal/flagx"
	"github.com/Amrit-pandey/airbnb-clone/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON config
// files. Duration fields accept both "24h"-style strings and integer
// nanoseconds. Empty fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	CookieName            string         `json:"cookie_name"`
	CookieSecure          *bool          `json:"cookie_secure"`
	CORSOrigin            string         `json:"cors_origin"`
	S3AccessKey           string         `json:"s3_access_key"`
	S3SecretKey           string         `json:"s3_secret_key"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3PublicBaseURL       string         `json:"s3_public_base_url"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing is
// loaded. An unreadable or invalid file panics: the process cannot run on a
// half-applied config.
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

	overlay := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(c.EndpointAddrHTTP, &config.EndpointAddrHTTP)
	overlay(c.DatabaseDSN, &config.DatabaseDSN)
	overlay(c.SecretKey, &config.SecretKey)
	overlay(c.CookieName, &config.CookieName)
	overlay(c.CORSOrigin, &config.CORSOrigin)
	overlay(c.S3AccessKey, &config.S3AccessKey)
	overlay(c.S3SecretKey, &config.S3SecretKey)
	overlay(c.S3Bucket, &config.S3Bucket)
	overlay(c.S3Region, &config.S3Region)
	overlay(c.S3BaseEndpoint, &config.S3BaseEndpoint)
	overlay(c.S3PublicBaseURL, &config.S3PublicBaseURL)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
}
