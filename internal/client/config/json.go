package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "explicitly empty" so a sparse file only
// overrides the keys it names.
type JsonConfig struct {
	Backend      *string `json:"backend"`
	DatabasePath *string `json:"database_path"`
	LogLevel     *string `json:"log_level"`
	LogFile      *string `json:"log_file"`

	OAuthClientID     *string `json:"oauth_client_id"`
	OAuthClientSecret *string `json:"oauth_client_secret"`
	OAuthRedirectPort *int    `json:"oauth_redirect_port"`

	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	S3Bucket       *string `json:"s3_bucket"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// A missing file is not an error, so the default path can be used without
// the file existing. A present but malformed file is an error.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.OAuthClientID, jc.OAuthClientID)
	setString(&cfg.OAuthClientSecret, jc.OAuthClientSecret)
	if jc.OAuthRedirectPort != nil {
		cfg.OAuthRedirectPort = *jc.OAuthRedirectPort
	}
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
