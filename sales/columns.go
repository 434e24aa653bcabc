package sales

// Canonical column names shared by the cleaning and normalization stages.
const (
	ColProductEAN     = "product_ean"
	ColFunctionalName = "functional_name"
	ColSKU            = "sku"
	ColQuantity       = "quantity"
	ColSalesEUR       = "sales_eur"
	ColSalesLC        = "sales_lc"
	ColCurrency       = "currency"
	ColYear           = "year"
	ColMonth          = "month"
	ColReseller       = "reseller"
)

// columnAliases maps each canonical column to the vendor-native names that
// mean the same thing, in precedence order. The canonical name itself is
// always tried first.
var columnAliases = []struct {
	canonical string
	aliases   []string
}{
	{ColProductEAN, []string{"ean", "eancode", "ean13", "stockcode", "barcode", "ean_code"}},
	{ColFunctionalName, []string{"product_name", "productname", "description", "article_description", "item_description", "product", "name"}},
	{ColSKU, []string{"article", "article_number", "item_code", "style"}},
	{ColQuantity, []string{"qty", "sales_qty", "qty_sold", "units", "units_sold", "sold"}},
	{ColSalesEUR, []string{"sales", "net_sales", "sales_value", "value", "amount", "sales_amount"}},
	{ColSalesLC, []string{"local_value", "sales_local", "value_lc"}},
	{ColCurrency, []string{"curr", "currency_code"}},
	{ColYear, []string{"report_year", "yr"}},
	{ColMonth, []string{"report_month", "mth", "period_month"}},
}

// CanonicalColumns returns the canonical column names in mapping order.
func CanonicalColumns() []string {
	out := make([]string, 0, len(columnAliases))
	for _, entry := range columnAliases {
		out = append(out, entry.canonical)
	}
	return out
}

// Aliases returns the vendor-native names accepted for a canonical column,
// the canonical name first.
func Aliases(canonical string) []string {
	for _, entry := range columnAliases {
		if entry.canonical == canonical {
			return append([]string{canonical}, entry.aliases...)
		}
	}
	return []string{canonical}
}

// FindColumn returns the first key of the row that maps to the canonical
// column.
func FindColumn(row Row, canonical string) (string, bool) {
	for _, alias := range Aliases(canonical) {
		if row.Has(alias) {
			return NormalizeHeader(alias), true
		}
	}
	return "", false
}
