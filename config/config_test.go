package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
	if cfg.Storage.DBPath != "./sellout.db" || cfg.Storage.BatchSize != 500 {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Catalog.CacheTTL != 10*time.Minute || cfg.Catalog.RetryDelay != 100*time.Millisecond {
		t.Fatalf("unexpected catalog durations: %+v", cfg.Catalog)
	}
	if cfg.Ingest.Workers != 4 || cfg.Server.Port != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := cfg.Server.MaxUploadBytes(); got != 32<<20 {
		t.Fatalf("expected 32 MiB, got %d", got)
	}
}

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("logging:\n  level: DEBUG\n"))
	if err != nil {
		t.Fatalf("expected partial config to validate: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Catalog.LookupRetries != 2 {
		t.Fatalf("expected default lookup retries, got %d", cfg.Catalog.LookupRetries)
	}
}

func TestValidateYAMLContent_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "batch size too large", content: "storage:\n  batch_size: 20000\n", want: "BatchSize"},
		{name: "unknown log level", content: "logging:\n  level: verbose\n", want: "Level"},
		{name: "unknown log format", content: "logging:\n  format: xml\n", want: "Format"},
		{name: "too many workers", content: "ingest:\n  workers: 64\n", want: "Workers"},
		{name: "port out of range", content: "server:\n  port: 70000\n", want: "Port"},
		{name: "redis url", content: "catalog:\n  redis_url: \"not a url\"\n", want: "RedisURL"},
		{name: "retries", content: "catalog:\n  lookup_retries: 11\n", want: "LookupRetries"},
		{name: "empty db path", content: "storage:\n  db_path: \"\"\n", want: "DBPath"},
		{name: "vendors file extension", content: "vendors:\n  file: vendors.json\n", want: "vendors.file"},
		{name: "missing vendors file", content: "vendors:\n  file: /does/not/exist.yaml\n", want: "vendors.file"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateYAMLContent([]byte(tc.content))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateYAMLContent_AcceptsExistingVendorsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vendors.yaml")
	if err := os.WriteFile(path, []byte("vendors: []\n"), 0o600); err != nil {
		t.Fatalf("write vendors file: %v", err)
	}

	cfg, err := ValidateYAMLContent([]byte("vendors:\n  file: " + path + "\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Vendors.File != path {
		t.Fatalf("unexpected vendors file %q", cfg.Vendors.File)
	}
}

func TestValidateYAMLContent_RejectsBrokenYAML(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("storage: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
