package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the NoteDrive CLI.
//
// Fields:
//   - Backend: which remote store implementation to use, "drive" or "s3".
//   - DatabasePath: location of the local SQLite database file.
//   - LogLevel / LogFile: logging verbosity and optional rotating log file.
//   - OAuthClientID / OAuthClientSecret: Google OAuth application credentials.
//   - OAuthRedirectPort: loopback port for the browser authorization flow.
//   - S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey / S3Bucket:
//     object storage settings for the "s3" backend.
type Config struct {
	Backend      string
	DatabasePath string
	LogLevel     string
	LogFile      string

	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectPort int

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
}

// LoadDefaults populates c with sensible defaults. The database and log
// files live under the user's home directory so the CLI works with no
// configuration at all when the "s3" backend is pointed at a local MinIO.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".notedrive")

	c.Backend = "drive"
	c.DatabasePath = filepath.Join(dir, "notes.db")
	c.LogLevel = "info"
	c.LogFile = filepath.Join(dir, "notedrive.log")
	c.OAuthRedirectPort = 8745
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3Bucket = "notedrive"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// an optional JSON file and finally from environment variables. Later sources
// take precedence over earlier ones. An empty path skips the JSON stage.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	return cfg, nil
}
