// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Logging  LoggingConfig  `koanf:"logging"`
	Rollup   RollupConfig   `koanf:"rollup"`
	Ranking  RankingConfig  `koanf:"ranking"`
	Matching MatchingConfig `koanf:"matching"`
	Ingest   IngestConfig   `koanf:"ingest"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the listen address for Fiber.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr       string        `koanf:"addr" validate:"omitempty,hostname_port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db" validate:"min=0"`
	CatalogTTL time.Duration `koanf:"catalog_ttl" validate:"min=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

type RollupConfig struct {
	// IncludeUnknownEntities counts facts for entities missing from the
	// catalog in the total row. They are dropped otherwise.
	IncludeUnknownEntities bool `koanf:"include_unknown_entities"`
	// MaxWindow bounds the time window of every windowed report (rollups,
	// matching durations, engagement).
	MaxWindow time.Duration `koanf:"max_window" validate:"min=0"`
}

type RankingConfig struct {
	// DerivedSortCeiling is the largest candidate set a derived sort may
	// materialize before the request is rejected.
	DerivedSortCeiling int `koanf:"derived_sort_ceiling" validate:"min=1"`
	DefaultPageSize    int `koanf:"default_page_size" validate:"min=1"`
	MaxPageSize        int `koanf:"max_page_size" validate:"min=1,gtefield=DefaultPageSize"`
}

type MatchingConfig struct {
	QualifyingStatuses []string `koanf:"qualifying_statuses" validate:"min=1,dive,required"`
	Timezone           string   `koanf:"timezone" validate:"timezone"`
}

type IngestConfig struct {
	// MaxBatch caps POST /events/bulk. 0 disables the cap.
	MaxBatch int `koanf:"max_batch" validate:"min=0"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks every section against its struct tags.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
