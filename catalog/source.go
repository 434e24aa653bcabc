// Package catalog resolves free-text product identifiers found in reseller
// files to catalog EANs and functional names.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sellout/sales"
)

// Source is the read-only product catalog. Each lookup reports found=false
// when the value is absent; an error means the lookup itself failed.
type Source interface {
	LookupByName(ctx context.Context, name string) (sales.CatalogEntry, bool, error)
	LookupAliasToName(ctx context.Context, alias string) (string, bool, error)
	LookupEANByName(ctx context.Context, name string) (string, bool, error)
}

// Key normalizes an identifier for lookups and cache keys: NFC, trimmed,
// inner whitespace collapsed, lower-case.
func Key(identifier string) string {
	normalized := norm.NFC.String(identifier)
	return strings.ToLower(strings.Join(strings.Fields(normalized), " "))
}
