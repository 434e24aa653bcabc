package cleaner

import (
	"context"

	"sellout/catalog"
	"sellout/sales"
)

// resolveIdentities looks up the free-text identifier of every row in one
// batch and fills in the EAN and the catalog name where found. Rows that
// already carry an EAN keep it. Unresolved rows keep their own name.
func resolveIdentities(ctx context.Context, rows []sales.Row, identifier string, resolver *catalog.Resolver, log *sales.AuditLog) {
	identifiers := make([]string, 0, len(rows))
	for _, row := range rows {
		identifiers = append(identifiers, row.Get(identifier))
	}
	resolutions := resolver.ResolveAll(ctx, identifiers)

	resolved := 0
	for _, row := range rows {
		raw := row.Get(identifier)
		resolution, ok := resolutions.For(raw)
		if !ok || !resolution.Resolved() {
			log.Value(row.Source, identifier, raw, "", sales.TransformIdentityResolution)
			continue
		}
		resolved++
		if resolution.EAN != "" && !hasEAN(row) {
			row.Set(sales.ColProductEAN, resolution.EAN)
		}
		if resolution.FunctionalName != "" {
			row.Set(sales.ColFunctionalName, resolution.FunctionalName)
		}
		log.Value(row.Source, identifier, raw, resolution.EAN, sales.TransformIdentityResolution)
	}
	log.Counts(sales.TransformIdentityResolution, len(rows), resolved)
}

func hasEAN(row sales.Row) bool {
	column, ok := sales.FindColumn(row, sales.ColProductEAN)
	return ok && row.Get(column) != ""
}
