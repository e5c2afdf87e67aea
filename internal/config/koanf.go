package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/funnel-metrics/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			CatalogTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Rollup: RollupConfig{
			IncludeUnknownEntities: false,
			MaxWindow:              366 * 24 * time.Hour,
		},
		Ranking: RankingConfig{
			DerivedSortCeiling: 20000,
			DefaultPageSize:    20,
			MaxPageSize:        100,
		},
		Matching: MatchingConfig{
			QualifyingStatuses: []string{"SCHEDULED", "WORKING", "COMPLETED_PENDING", "COMPLETED_RATED"},
			Timezone:           "Asia/Tokyo",
		},
		Ingest: IngestConfig{
			MaxBatch: 500,
		},
	}
}

// Load builds the configuration: defaults, then the config file if one
// exists, then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"matching.qualifying_statuses",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment names onto config paths.
var envMappings = map[string]string{
	"postgres_dsn":                    "database.dsn",
	"db_max_open_conns":               "database.max_open_conns",
	"db_max_idle_conns":               "database.max_idle_conns",
	"db_conn_max_lifetime":            "database.conn_max_lifetime",
	"http_port":                       "server.port",
	"http_host":                       "server.host",
	"shutdown_timeout":                "server.shutdown_timeout",
	"redis_addr":                      "redis.addr",
	"redis_password":                  "redis.password",
	"redis_db":                        "redis.db",
	"catalog_cache_ttl":               "redis.catalog_ttl",
	"log_level":                       "logging.level",
	"log_format":                      "logging.format",
	"log_caller":                      "logging.caller",
	"rollup_include_unknown_entities": "rollup.include_unknown_entities",
	"rollup_max_window":               "rollup.max_window",
	"ranking_derived_sort_ceiling":    "ranking.derived_sort_ceiling",
	"ranking_default_page_size":       "ranking.default_page_size",
	"ranking_max_page_size":           "ranking.max_page_size",
	"matching_qualifying_statuses":    "matching.qualifying_statuses",
	"matching_timezone":               "matching.timezone",
	"ingest_max_batch":                "ingest.max_batch",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unknown names are returned empty so koanf ignores them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
