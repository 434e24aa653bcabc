package output

import (
	"strconv"

	"sellout/sales"
)

var factHeaders = []string{"product_ean", "functional_name", "reseller", "quantity", "sales_eur", "sales_lc", "currency", "year", "month"}

var transformationHeaders = []string{"row_index", "column_name", "original_value", "cleaned_value", "transformation"}

func FactsTable(facts []sales.Fact) Table {
	rows := make([][]string, 0, len(facts))
	for _, fact := range facts {
		salesEUR := ""
		if fact.SalesEUR != nil {
			salesEUR = fact.SalesEUR.StringFixed(2)
		}
		rows = append(rows, []string{
			fact.ProductEAN,
			fact.FunctionalName,
			fact.Reseller,
			strconv.Itoa(fact.Quantity),
			salesEUR,
			fact.SalesLC,
			fact.Currency,
			strconv.Itoa(fact.Year),
			strconv.Itoa(fact.Month),
		})
	}
	return Table{Headers: factHeaders, Rows: rows}
}

func TransformationsTable(records []sales.TransformationRecord) Table {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.RowIndex),
			record.ColumnName,
			record.OriginalValue,
			record.CleanedValue,
			record.Transformation,
		})
	}
	return Table{Headers: transformationHeaders, Rows: rows}
}
