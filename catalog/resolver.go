package catalog

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"sellout/sales"
)

// Resolution is what the catalog knows about one identifier. Empty fields
// mean the hop that would have filled them found nothing.
type Resolution struct {
	EAN            string `json:"ean,omitempty"`
	FunctionalName string `json:"functional_name,omitempty"`
}

func (r Resolution) Resolved() bool {
	return r.EAN != "" || r.FunctionalName != ""
}

// Resolutions maps normalized identifiers to their resolution.
type Resolutions map[string]Resolution

// For looks up the resolution of a raw identifier.
func (rs Resolutions) For(identifier string) (Resolution, bool) {
	resolution, ok := rs[Key(identifier)]
	return resolution, ok
}

type Resolver struct {
	source Source
	cache  Cache
	retry  Retry
	logger logrus.FieldLogger
}

type Option func(*Resolver)

func WithCache(cache Cache) Option {
	return func(r *Resolver) { r.cache = cache }
}

func WithRetry(retry Retry) Option {
	return func(r *Resolver) { r.retry = retry }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func NewResolver(source Source, opts ...Option) *Resolver {
	r := &Resolver{source: source, retry: Retry{Attempts: 2}}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		r.logger = logger
	}
	return r
}

// ResolveAll resolves each distinct identifier once, consulting the cache
// first. Lookup failures degrade to not-found. A nil resolver resolves
// nothing.
func (r *Resolver) ResolveAll(ctx context.Context, identifiers []string) Resolutions {
	out := make(Resolutions)
	if r == nil || r.source == nil {
		return out
	}

	for _, identifier := range identifiers {
		key := Key(identifier)
		if key == "" {
			continue
		}
		if _, done := out[key]; done {
			continue
		}

		if r.cache != nil {
			cached, ok, err := r.cache.Get(ctx, key)
			if err != nil {
				r.logger.WithError(err).WithField("identifier", key).Debug("catalog cache read failed")
			} else if ok {
				out[key] = cached
				continue
			}
		}

		resolution := r.resolve(ctx, strings.TrimSpace(identifier))
		out[key] = resolution

		if r.cache != nil && ctx.Err() == nil {
			if err := r.cache.Set(ctx, key, resolution); err != nil {
				r.logger.WithError(err).WithField("identifier", key).Debug("catalog cache write failed")
			}
		}
	}
	return out
}

// resolve runs the three hops. Every hop is attempted regardless of the
// outcome of the previous one.
func (r *Resolver) resolve(ctx context.Context, identifier string) Resolution {
	var (
		entry       sales.CatalogEntry
		entryFound  bool
		canonical   string
		aliasFound  bool
		hopEAN      string
		hopEANFound bool
	)

	if err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		entry, entryFound, err = r.source.LookupByName(ctx, identifier)
		return r.logFailure(err, "lookup_by_name", identifier)
	}); err != nil {
		entryFound = false
	}
	if err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		canonical, aliasFound, err = r.source.LookupAliasToName(ctx, identifier)
		return r.logFailure(err, "lookup_alias_to_name", identifier)
	}); err != nil {
		aliasFound = false
	}

	name := identifier
	if aliasFound && canonical != "" {
		name = canonical
	}
	if err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		hopEAN, hopEANFound, err = r.source.LookupEANByName(ctx, name)
		return r.logFailure(err, "lookup_ean_by_name", name)
	}); err != nil {
		hopEANFound = false
	}

	var resolution Resolution
	switch {
	case entryFound && entry.EAN != "":
		resolution.EAN = entry.EAN
	case hopEANFound:
		resolution.EAN = hopEAN
	}
	switch {
	case entryFound && entry.FunctionalName != "":
		resolution.FunctionalName = entry.FunctionalName
	case aliasFound:
		resolution.FunctionalName = canonical
	}
	return resolution
}

func (r *Resolver) logFailure(err error, hop, identifier string) error {
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{"hop": hop, "identifier": identifier}).Debug("catalog lookup failed")
	}
	return err
}
