package config

import (
	"os"
	"strconv"
)

// parseEnv overlays selected Config fields from environment variables.
// Only set variables override; an empty value is a deliberate override.
//
// Supported variables:
//
//	NOTEDRIVE_BACKEND              "drive" or "s3"
//	NOTEDRIVE_DATABASE_PATH        local SQLite database file
//	NOTEDRIVE_LOG_LEVEL            debug | info | warn | error
//	NOTEDRIVE_LOG_FILE             rotating log file path
//	NOTEDRIVE_OAUTH_CLIENT_ID      Google OAuth client id
//	NOTEDRIVE_OAUTH_CLIENT_SECRET  Google OAuth client secret
//	NOTEDRIVE_OAUTH_REDIRECT_PORT  loopback port for the browser flow
//	NOTEDRIVE_S3_REGION            object storage region
//	NOTEDRIVE_S3_BASE_ENDPOINT     object storage endpoint URL
//	NOTEDRIVE_S3_ACCESS_KEY        object storage access key
//	NOTEDRIVE_S3_SECRET_KEY        object storage secret key
//	NOTEDRIVE_S3_BUCKET            object storage bucket name
func parseEnv(cfg *Config) {
	envString(&cfg.Backend, "NOTEDRIVE_BACKEND")
	envString(&cfg.DatabasePath, "NOTEDRIVE_DATABASE_PATH")
	envString(&cfg.LogLevel, "NOTEDRIVE_LOG_LEVEL")
	envString(&cfg.LogFile, "NOTEDRIVE_LOG_FILE")
	envString(&cfg.OAuthClientID, "NOTEDRIVE_OAUTH_CLIENT_ID")
	envString(&cfg.OAuthClientSecret, "NOTEDRIVE_OAUTH_CLIENT_SECRET")
	if v, ok := os.LookupEnv("NOTEDRIVE_OAUTH_REDIRECT_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.OAuthRedirectPort = port
		}
	}
	envString(&cfg.S3Region, "NOTEDRIVE_S3_REGION")
	envString(&cfg.S3BaseEndpoint, "NOTEDRIVE_S3_BASE_ENDPOINT")
	envString(&cfg.S3AccessKey, "NOTEDRIVE_S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "NOTEDRIVE_S3_SECRET_KEY")
	envString(&cfg.S3Bucket, "NOTEDRIVE_S3_BUCKET")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
