package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sellout/catalog"
	"sellout/config"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.WithField("vendor", "boxnox").Warn("shown")
	text := buf.String()
	if strings.Contains(text, "hidden") {
		t.Fatalf("info message must be filtered: %s", text)
	}
	if !strings.Contains(text, `"vendor":"boxnox"`) {
		t.Fatalf("expected json fields, got %s", text)
	}

	if _, err := newLogger(config.LoggingConfig{Level: "loud"}, &buf); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if _, err := newLogger(config.LoggingConfig{Format: "xml"}, &buf); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestLoadVendorTable(t *testing.T) {
	t.Parallel()

	table, err := loadVendorTable("")
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	if !table.Known("boxnox") {
		t.Fatalf("expected built-in vendors")
	}

	path := filepath.Join(t.TempDir(), "vendors.yaml")
	content := "vendors:\n  - id: acme\n    currency: EUR\n    filename_tokens: [acme]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write vendors file: %v", err)
	}
	table, err = loadVendorTable(path)
	if err != nil {
		t.Fatalf("custom table: %v", err)
	}
	if !table.Known("acme") || table.Known("boxnox") {
		t.Fatalf("expected custom table to replace built-in vendors: %v", table.IDs())
	}

	if _, err := loadVendorTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewResolutionCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, closeCache, err := newResolutionCache(ctx, config.CatalogConfig{CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("memory cache: %v", err)
	}
	if _, ok := cache.(*catalog.MemoryCache); !ok {
		t.Fatalf("expected memory cache, got %T", cache)
	}
	if err := closeCache(); err != nil {
		t.Fatalf("close memory cache: %v", err)
	}

	server := miniredis.RunT(t)
	cache, closeCache, err = newResolutionCache(ctx, config.CatalogConfig{CacheTTL: time.Minute, RedisURL: "redis://" + server.Addr()})
	if err != nil {
		t.Fatalf("redis cache: %v", err)
	}
	defer closeCache()
	if _, ok := cache.(*catalog.RedisCache); !ok {
		t.Fatalf("expected redis cache, got %T", cache)
	}
}

func TestResolveDBPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Storage: config.StorageConfig{DBPath: "./configured.db"}}
	if got := resolveDBPath("", cfg); got != "./configured.db" {
		t.Fatalf("expected configured path, got %q", got)
	}
	if got := resolveDBPath("./flag.db", cfg); got != "./flag.db" {
		t.Fatalf("expected flag path, got %q", got)
	}
}

func TestRequiresConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{cmd: ingestCmd, want: true},
		{cmd: deleteCmd, want: true},
		{cmd: catalogImportCmd, want: true},
		{cmd: detectCmd, want: false},
		{cmd: configDeleteCmd, want: false},
		{cmd: configShowCmd, want: false},
		{cmd: nil, want: false},
	}

	for _, tt := range tests {
		if got := requiresConfig(tt.cmd); got != tt.want {
			name := "<nil>"
			if tt.cmd != nil {
				name = tt.cmd.CommandPath()
			}
			t.Fatalf("requiresConfig(%s) = %v, want %v", name, got, tt.want)
		}
	}
}
