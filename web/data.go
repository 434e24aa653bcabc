package web

import (
	"fmt"
	"time"

	"sellout/sales"
	"sellout/storage"
)

type UploadView struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Vendor      string `json:"vendor"`
	Sheet       string `json:"sheet"`
	Period      string `json:"period"`
	RowsRead    int    `json:"rowsRead"`
	RowsCleaned int    `json:"rowsCleaned"`
	FactCount   int    `json:"factCount"`
	CreatedAt   string `json:"createdAt"`
}

type FactView struct {
	ProductEAN     *string `json:"productEan"`
	FunctionalName *string `json:"functionalName"`
	Reseller       string  `json:"reseller"`
	Quantity       int     `json:"quantity"`
	SalesEUR       *string `json:"salesEur"`
	SalesLC        *string `json:"salesLc"`
	Currency       string  `json:"currency"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
}

type TransformationView struct {
	RowIndex       int    `json:"rowIndex"`
	ColumnName     string `json:"columnName"`
	OriginalValue  string `json:"originalValue"`
	CleanedValue   string `json:"cleanedValue"`
	Transformation string `json:"transformation"`
}

func BuildUploadView(upload storage.Upload) UploadView {
	return UploadView{
		ID:          upload.ID,
		Filename:    upload.Filename,
		Vendor:      upload.Vendor,
		Sheet:       upload.Sheet,
		Period:      formatPeriod(upload.Period),
		RowsRead:    upload.RowsRead,
		RowsCleaned: upload.RowsCleaned,
		FactCount:   upload.FactCount,
		CreatedAt:   upload.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// BuildFactViews renders absent values as JSON null.
func BuildFactViews(facts []sales.Fact) []FactView {
	out := make([]FactView, 0, len(facts))
	for _, fact := range facts {
		view := FactView{
			ProductEAN:     optional(fact.ProductEAN),
			FunctionalName: optional(fact.FunctionalName),
			Reseller:       fact.Reseller,
			Quantity:       fact.Quantity,
			SalesLC:        optional(fact.SalesLC),
			Currency:       fact.Currency,
			Year:           fact.Year,
			Month:          fact.Month,
		}
		if fact.SalesEUR != nil {
			view.SalesEUR = optional(fact.SalesEUR.String())
		}
		out = append(out, view)
	}
	return out
}

func BuildTransformationViews(records []sales.TransformationRecord) []TransformationView {
	out := make([]TransformationView, 0, len(records))
	for _, record := range records {
		out = append(out, TransformationView(record))
	}
	return out
}

func formatPeriod(period sales.Period) string {
	return fmt.Sprintf("%04d-%02d", period.Year, period.Month)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
