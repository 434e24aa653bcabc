package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sellout/catalog"
	"sellout/config"
	"sellout/importer"
	"sellout/reseller"
	"sellout/storage"
)

// newLogger builds the process logger from the logging section.
func newLogger(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging.level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid logging.format %q (supported: text, json)", cfg.Format)
	}

	return logger, nil
}

func loadVendorTable(path string) (*reseller.Table, error) {
	if strings.TrimSpace(path) == "" {
		return reseller.Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vendors file: %w", err)
	}
	table, err := reseller.ParseTable(content)
	if err != nil {
		return nil, fmt.Errorf("parse vendors file %s: %w", path, err)
	}
	return table, nil
}

// newResolutionCache returns the Redis cache when a URL is configured and the
// in-process cache otherwise. The returned close func is never nil.
func newResolutionCache(ctx context.Context, cfg config.CatalogConfig) (catalog.Cache, func() error, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return catalog.NewMemoryCache(cfg.CacheTTL, time.Now), func() error { return nil }, nil
	}
	cache, err := catalog.OpenRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache.Close, nil
}

func newResolver(cfg config.CatalogConfig, source catalog.Source, cache catalog.Cache, logger logrus.FieldLogger) *catalog.Resolver {
	return catalog.NewResolver(source,
		catalog.WithCache(cache),
		catalog.WithRetry(catalog.Retry{Attempts: cfg.LookupRetries + 1, Delay: cfg.RetryDelay}),
		catalog.WithLogger(logger),
	)
}

func resolveDBPath(flagValue string, cfg *config.Config) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return cfg.Storage.DBPath
}

// app bundles what the data commands share: configuration, logger, store
// and pipeline.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	store    *storage.SQLiteStore
	pipeline *importer.Pipeline
	closers  []func() error
}

func newApp(ctx context.Context, dbFlag string) (*app, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, err
	}
	vendors, err := loadVendorTable(cfg.Vendors.File)
	if err != nil {
		return nil, err
	}

	dbPath := resolveDBPath(dbFlag, cfg)
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, store: store, closers: []func() error{store.Close}}

	cache, closeCache, err := newResolutionCache(ctx, cfg.Catalog)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeCache)

	resolver := newResolver(cfg.Catalog, store, cache, logger)
	a.pipeline = importer.NewPipeline(vendors, resolver, logger, cfg.Ingest.Workers)
	logger.WithField("db", dbPath).Debug("store opened")
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
