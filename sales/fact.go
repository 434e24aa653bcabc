package sales

import "github.com/shopspring/decimal"

// Fact is the canonical sales record emitted by the pipeline. Empty strings
// mean the field is absent; SalesEUR is nil when no EUR figure is known.
type Fact struct {
	ProductEAN     string
	FunctionalName string
	Reseller       string
	Quantity       int
	SalesEUR       *decimal.Decimal
	SalesLC        string
	Currency       string
	Year           int
	Month          int
}

// CatalogEntry is one product of the read-only product catalog.
type CatalogEntry struct {
	EAN            string
	FunctionalName string
	LibertyName    string
	GaliluName     string
}

// Period is a reporting month.
type Period struct {
	Year  int
	Month int
}

// Valid reports whether the period is inside the supported reporting range.
func (p Period) Valid() bool {
	return p.Year >= 2000 && p.Year <= 2100 && p.Month >= 1 && p.Month <= 12
}
