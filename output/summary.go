package output

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"sellout/sales"
)

// PeriodSummary totals the facts of one reseller for one reporting month.
type PeriodSummary struct {
	Reseller   string
	Year       int
	Month      int
	Currency   string
	Quantity   int
	SalesEUR   decimal.Decimal
	FactCount  int
	Products   int
	MissingEAN int
}

type summaryKey struct {
	reseller string
	year     int
	month    int
}

// BuildPeriodSummaries groups facts by reseller and month, sorted by
// reseller then period. Facts without a sales_eur amount count towards the
// quantity only.
func BuildPeriodSummaries(facts []sales.Fact) []PeriodSummary {
	if len(facts) == 0 {
		return []PeriodSummary{}
	}

	byKey := make(map[summaryKey]*PeriodSummary)
	products := make(map[summaryKey]map[string]struct{})
	for _, fact := range facts {
		key := summaryKey{reseller: fact.Reseller, year: fact.Year, month: fact.Month}
		summary, ok := byKey[key]
		if !ok {
			summary = &PeriodSummary{Reseller: fact.Reseller, Year: fact.Year, Month: fact.Month, Currency: fact.Currency}
			byKey[key] = summary
			products[key] = make(map[string]struct{})
		}

		summary.Quantity += fact.Quantity
		summary.FactCount++
		if fact.SalesEUR != nil {
			summary.SalesEUR = summary.SalesEUR.Add(*fact.SalesEUR)
		}

		product := fact.ProductEAN
		if product == "" {
			summary.MissingEAN++
			product = "name:" + fact.FunctionalName
		}
		products[key][product] = struct{}{}
	}

	summaries := make([]PeriodSummary, 0, len(byKey))
	for key, summary := range byKey {
		summary.Products = len(products[key])
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Reseller != summaries[j].Reseller {
			return summaries[i].Reseller < summaries[j].Reseller
		}
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Month < summaries[j].Month
	})

	return summaries
}

func SummaryTable(summaries []PeriodSummary) Table {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Reseller,
			strconv.Itoa(summary.Year),
			strconv.Itoa(summary.Month),
			summary.Currency,
			strconv.Itoa(summary.Quantity),
			summary.SalesEUR.StringFixed(2),
			strconv.Itoa(summary.FactCount),
			strconv.Itoa(summary.Products),
			strconv.Itoa(summary.MissingEAN),
		})
	}
	return Table{
		Headers: []string{"reseller", "year", "month", "currency", "quantity", "sales_eur", "facts", "products", "missing_ean"},
		Rows:    rows,
	}
}
