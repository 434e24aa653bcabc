package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyStorageDBPath        = "storage.db_path"
	KeyStorageBatchSize     = "storage.batch_size"
	KeyCatalogCacheTTL      = "catalog.cache_ttl"
	KeyCatalogRedisURL      = "catalog.redis_url"
	KeyCatalogLookupRetries = "catalog.lookup_retries"
	KeyCatalogRetryDelay    = "catalog.retry_delay"
	KeyLoggingLevel         = "logging.level"
	KeyLoggingFormat        = "logging.format"
	KeyIngestWorkers        = "ingest.workers"
	KeyVendorsFile          = "vendors.file"
	KeyServerPort           = "server.port"
	KeyServerMaxUploadMB    = "server.max_upload_mb"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Vendors VendorsConfig `mapstructure:"vendors"`
	Server  ServerConfig  `mapstructure:"server"`
}

type StorageConfig struct {
	DBPath    string `mapstructure:"db_path" validate:"required"`
	BatchSize int    `mapstructure:"batch_size" validate:"min=1,max=10000"`
}

type CatalogConfig struct {
	CacheTTL      time.Duration `mapstructure:"cache_ttl" validate:"min=0"`
	RedisURL      string        `mapstructure:"redis_url" validate:"omitempty,url"`
	LookupRetries int           `mapstructure:"lookup_retries" validate:"min=0,max=10"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" validate:"min=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type IngestConfig struct {
	Workers int `mapstructure:"workers" validate:"min=1,max=32"`
}

// VendorsConfig points at an optional YAML file replacing the built-in
// reseller table.
type VendorsConfig struct {
	File string `mapstructure:"file"`
}

type ServerConfig struct {
	Port        int `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadMB int `mapstructure:"max_upload_mb" validate:"min=1,max=512"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return ExampleYAMLWithVendors("")
}

// ExampleYAMLWithVendors returns the template with vendors.file set to path.
func ExampleYAMLWithVendors(path string) string {
	return fmt.Sprintf(`# sellout configuration
storage:
  db_path: "./sellout.db"
  batch_size: 500

catalog:
  cache_ttl: "10m"
  # redis_url: "redis://localhost:6379/0"
  lookup_retries: 2
  retry_delay: "100ms"

logging:
  level: "info"
  format: "text"

ingest:
  workers: 4

vendors:
  # replaces the built-in reseller table when set
  file: %q

server:
  port: 8080
  max_upload_mb: 32
`, path)
}

// MaxUploadBytes converts the configured upload limit to bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateVendorsFile(cfg.Vendors.File); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageDBPath, "./sellout.db")
	v.SetDefault(KeyStorageBatchSize, 500)
	v.SetDefault(KeyCatalogCacheTTL, "10m")
	v.SetDefault(KeyCatalogRedisURL, "")
	v.SetDefault(KeyCatalogLookupRetries, 2)
	v.SetDefault(KeyCatalogRetryDelay, "100ms")
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "text")
	v.SetDefault(KeyIngestWorkers, 4)
	v.SetDefault(KeyVendorsFile, "")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerMaxUploadMB, 32)
}

func validateVendorsFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("validation failed: vendors.file %q must be a .yaml file", path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("validation failed: vendors.file: %w", err)
	}
	return nil
}
