package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "drive", c.Backend)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 8745, c.OAuthRedirectPort)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "notedrive", c.S3Bucket)
	assert.NotEmpty(t, c.DatabasePath)
	assert.NotEmpty(t, c.LogFile)
}

func TestLoadConfig_UsesDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "drive", cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesJson(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"backend":   "s3",
		"s3_bucket": "from-json",
	})
	t.Setenv("NOTEDRIVE_S3_BUCKET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Backend)
	assert.Equal(t, "from-env", cfg.S3Bucket)
}
