package cleaner

import (
	"strconv"

	"sellout/sales"
)

// adjacencyWindow is how many source rows apart two identical entries may be
// and still count as one.
const adjacencyWindow = 2

// dedupAdjacent collapses an entry into the previously kept one when both
// share quantity, sales and identifier and sit within adjacencyWindow source
// rows of each other. The later entry wins. Repeats further apart are kept.
func dedupAdjacent(rows []sales.Row, identifier string, log *sales.AuditLog) []sales.Row {
	kept := make([]sales.Row, 0, len(rows))
	for _, row := range rows {
		if n := len(kept); n > 0 {
			last := kept[n-1]
			if row.Source-last.Source <= adjacencyWindow && sameEntry(last, row, identifier) {
				log.Value(row.Source, identifier, row.Get(identifier), "replaces row "+strconv.Itoa(last.Source), sales.TransformDedup)
				kept[n-1] = row
				continue
			}
		}
		kept = append(kept, row)
	}
	log.Counts(sales.TransformDedup, len(rows), len(kept))
	return kept
}

func sameEntry(a, b sales.Row, identifier string) bool {
	return a.Get(sales.ColQuantity) == b.Get(sales.ColQuantity) &&
		a.Get(sales.ColSalesEUR) == b.Get(sales.ColSalesEUR) &&
		a.Get(identifier) == b.Get(identifier)
}
