// Package config loads runtime configuration for the NoteDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson), path passed by the caller.
//  3. Environment variables (see parseEnv), which override earlier values.
//
// # JSON schema
//
// Keys mirror the Config fields in snake_case; a sparse file only overrides
// the keys it names:
//
//	{
//	  "backend": "s3",
//	  "database_path": "/var/lib/notedrive/notes.db",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/",
//	  "s3_bucket": "notedrive"
//	}
//
// Primary API
//
//   - type Config                        — all runtime settings
//   - func LoadConfig(path) (*Config, error) — defaults, then JSON, then env
//   - func (*Config) LoadDefaults()      — sets sensible defaults
//
// Note: Command-line flags belong to the CLI layer; this package never reads
// os.Args.
package config
