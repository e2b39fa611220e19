// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables win over it.
package config

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// Storage drivers
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the full server configuration
type Config struct {
	GRPCPort    int    `env:"GURPS_GRPC_PORT" envDefault:"50051"`
	MetricsAddr string `env:"GURPS_METRICS_ADDR" envDefault:":9090"`

	Log     LogConfig
	Storage StorageConfig
	Archive ArchiveConfig
	Catalog CatalogConfig
	Rules   RulesConfig
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `env:"GURPS_LOG_LEVEL" envDefault:"info"`
	Format string `env:"GURPS_LOG_FORMAT" envDefault:"text"`
}

// StorageConfig selects the character repository
type StorageConfig struct {
	Driver        string `env:"GURPS_STORAGE_DRIVER" envDefault:"redis"`
	RedisAddr     string `env:"GURPS_STORAGE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"GURPS_STORAGE_REDIS_PASSWORD"`
	SQLitePath    string `env:"GURPS_STORAGE_SQLITE_PATH" envDefault:"gurps.db"`
}

// ArchiveConfig selects where exports are kept
type ArchiveConfig struct {
	Driver            string `env:"GURPS_ARCHIVE_DRIVER" envDefault:"fs"`
	Dir               string `env:"GURPS_ARCHIVE_DIR" envDefault:"./exports-data"`
	S3Bucket          string `env:"GURPS_ARCHIVE_S3_BUCKET"`
	S3Region          string `env:"GURPS_ARCHIVE_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint        string `env:"GURPS_ARCHIVE_S3_ENDPOINT"`
	S3PathStyle       bool   `env:"GURPS_ARCHIVE_S3_PATH_STYLE"`
	S3AccessKeyID     string `env:"GURPS_ARCHIVE_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"GURPS_ARCHIVE_S3_SECRET_ACCESS_KEY"`
}

// CatalogConfig lists catalog files or URLs, later entries win
type CatalogConfig struct {
	Sources []string `env:"GURPS_CATALOG_SOURCES" envSeparator:","`
}

// RulesConfig tunes the engine
type RulesConfig struct {
	OverridePolicy    string `env:"GURPS_RULES_OVERRIDE_POLICY" envDefault:"explicit"`
	IncludeSocialCost bool   `env:"GURPS_RULES_INCLUDE_SOCIAL_COST"`
}

// Load reads .env if present, then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to read .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GURPS_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("GURPS_LOG_LEVEL", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("GURPS_LOG_FORMAT", c.Log.Format, []string{LogFormatText, LogFormatJSON}, vb)

	errors.ValidateEnum("GURPS_STORAGE_DRIVER", c.Storage.Driver, []string{StorageRedis, StorageSQLite}, vb)
	switch c.Storage.Driver {
	case StorageRedis:
		errors.ValidateRequired("GURPS_STORAGE_REDIS_ADDR", c.Storage.RedisAddr, vb)
	case StorageSQLite:
		errors.ValidateRequired("GURPS_STORAGE_SQLITE_PATH", c.Storage.SQLitePath, vb)
	}

	errors.ValidateEnum("GURPS_ARCHIVE_DRIVER", archive.Driver(c.Archive.Driver), []archive.Driver{
		archive.DriverFilesystem,
		archive.DriverMemory,
		archive.DriverS3,
	}, vb)
	if c.Archive.Driver == string(archive.DriverS3) {
		errors.ValidateRequired("GURPS_ARCHIVE_S3_BUCKET", c.Archive.S3Bucket, vb)
	}

	if !rules.OverridePolicy(c.Rules.OverridePolicy).Valid() {
		vb.InvalidField("GURPS_RULES_OVERRIDE_POLICY", c.Rules.OverridePolicy)
	}

	return vb.Build()
}

// SlogLevel maps Log.Level onto slog
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StoreConfig converts to the archive package's config
func (c ArchiveConfig) StoreConfig() archive.Config {
	return archive.Config{
		Driver: archive.Driver(c.Driver),
		Dir:    c.Dir,
		S3: archive.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			PathStyle:       c.S3PathStyle,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
		},
	}
}

// Policy returns the override policy as a rules value
func (c RulesConfig) Policy() rules.OverridePolicy {
	return rules.OverridePolicy(c.OverridePolicy)
}
