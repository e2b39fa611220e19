package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/config"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.LoadFrom(map[string]string{})
	s.Require().NoError(err)

	s.Assert().Equal(50051, cfg.GRPCPort)
	s.Assert().Equal(":9090", cfg.MetricsAddr)
	s.Assert().Equal(config.StorageRedis, cfg.Storage.Driver)
	s.Assert().Equal("localhost:6379", cfg.Storage.RedisAddr)
	s.Assert().Equal(string(archive.DriverFilesystem), cfg.Archive.Driver)
	s.Assert().Equal(rules.PolicyExplicit, cfg.Rules.Policy())
	s.Assert().False(cfg.Rules.IncludeSocialCost)
	s.Assert().Empty(cfg.Catalog.Sources)
	s.Assert().Equal(slog.LevelInfo, cfg.Log.SlogLevel())
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.LoadFrom(map[string]string{
		"GURPS_GRPC_PORT":                 "6000",
		"GURPS_LOG_LEVEL":                 "DEBUG",
		"GURPS_LOG_FORMAT":                "json",
		"GURPS_STORAGE_DRIVER":            "sqlite",
		"GURPS_STORAGE_SQLITE_PATH":       "/var/lib/gurps/sheets.db",
		"GURPS_ARCHIVE_DRIVER":            "s3",
		"GURPS_ARCHIVE_S3_BUCKET":         "gurps-exports",
		"GURPS_ARCHIVE_S3_ENDPOINT":       "http://localhost:9000",
		"GURPS_ARCHIVE_S3_PATH_STYLE":     "true",
		"GURPS_CATALOG_SOURCES":           "catalog/base.yaml,https://example.com/extra.json",
		"GURPS_RULES_OVERRIDE_POLICY":     "track-default",
		"GURPS_RULES_INCLUDE_SOCIAL_COST": "true",
	})
	s.Require().NoError(err)

	s.Assert().Equal(6000, cfg.GRPCPort)
	s.Assert().Equal(slog.LevelDebug, cfg.Log.SlogLevel())
	s.Assert().Equal("/var/lib/gurps/sheets.db", cfg.Storage.SQLitePath)
	s.Assert().Equal([]string{"catalog/base.yaml", "https://example.com/extra.json"}, cfg.Catalog.Sources)
	s.Assert().Equal(rules.PolicyTrackDefault, cfg.Rules.Policy())
	s.Assert().True(cfg.Rules.IncludeSocialCost)

	store := cfg.Archive.StoreConfig()
	s.Assert().Equal(archive.DriverS3, store.Driver)
	s.Assert().Equal("gurps-exports", store.S3.Bucket)
	s.Assert().Equal("us-east-1", store.S3.Region)
	s.Assert().True(store.S3.PathStyle)
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{
			name:  "port out of range",
			env:   map[string]string{"GURPS_GRPC_PORT": "70000"},
			field: "GURPS_GRPC_PORT",
		},
		{
			name:  "unknown storage driver",
			env:   map[string]string{"GURPS_STORAGE_DRIVER": "postgres"},
			field: "GURPS_STORAGE_DRIVER",
		},
		{
			name:  "s3 without bucket",
			env:   map[string]string{"GURPS_ARCHIVE_DRIVER": "s3"},
			field: "GURPS_ARCHIVE_S3_BUCKET",
		},
		{
			name:  "unknown override policy",
			env:   map[string]string{"GURPS_RULES_OVERRIDE_POLICY": "always"},
			field: "GURPS_RULES_OVERRIDE_POLICY",
		},
		{
			name:  "unknown log format",
			env:   map[string]string{"GURPS_LOG_FORMAT": "xml"},
			field: "GURPS_LOG_FORMAT",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg, err := config.LoadFrom(tc.env)
			s.Require().Error(err)
			s.Assert().Nil(cfg)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Contains(err.Error(), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestMalformedNumber() {
	_, err := config.LoadFrom(map[string]string{"GURPS_GRPC_PORT": "fifty"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}
