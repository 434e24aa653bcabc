// Package cleaner turns a raw worksheet into vendor-native rows. Each
// reseller format has a Strategy; unknown resellers pass through the
// generic one.
package cleaner

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"sellout/catalog"
	"sellout/period"
	"sellout/reseller"
	"sellout/sales"
)

// Context carries what a strategy needs besides the sheet itself.
type Context struct {
	Vendor   reseller.Config
	Filename string
	Period   sales.Period
	Resolver *catalog.Resolver
	Logger   logrus.FieldLogger
}

// Result is the output of one cleaning run. Period is the reporting month
// the rows were cleaned for; strategies leave it unset.
type Result struct {
	Rows   []sales.Row
	Log    *sales.AuditLog
	Period sales.Period
}

// Strategy cleans one reseller format. Implementations never fail: bad
// cells and rows are dropped or left as-is and recorded in the log.
type Strategy interface {
	Clean(ctx context.Context, sheet *sales.RawSheet, c Context) Result
}

var registry = map[string]Strategy{
	"boxnox":     Unpivot{},
	"aromateque": Unpivot{},
	"skins_nl":   PeriodFilter{},
	"skins_sa":   CurrencyText{Symbols: zarSymbols},
	"cdlc":       Pivot{Layout: PivotLayout{HeaderRow: 3, IDCol: 0, DescCol: 1, QtyFromEnd: 2, SalesFromEnd: 1}},
	"selfridges": Pivot{Layout: PivotLayout{HeaderRow: 5, IDCol: 0, DescCol: 1, QtyFromEnd: 2, SalesFromEnd: 1}},
	"liberty":    Liberty{},
	"galilu":     Galilu{},
	"ukraine":    Ukraine{},

	reseller.Generic: Generic{},
}

// StrategyFor returns the strategy registered for the vendor and whether one
// was found; unknown vendors get the generic strategy.
func StrategyFor(vendorID string) (Strategy, bool) {
	if strategy, ok := registry[vendorID]; ok {
		return strategy, true
	}
	return Generic{}, false
}

// Clean extracts the reporting period, runs the vendor's strategy and
// returns its rows with an audit trail that starts with the period record.
func Clean(ctx context.Context, sheet *sales.RawSheet, c Context) Result {
	if c.Logger == nil {
		c.Logger = discardLogger()
	}
	log := &sales.AuditLog{}

	extracted := period.Extract(c.Vendor.ID, c.Filename, sheet)
	c.Period = extracted.Period
	log.Value(sales.SheetLevel, "filename", c.Filename, formatPeriod(extracted.Period), sales.TransformDateExtraction)
	if extracted.Defaulted {
		original := ""
		if extracted.Rejected != nil {
			original = formatPeriod(*extracted.Rejected)
		}
		log.Value(sales.SheetLevel, "period", original, formatPeriod(extracted.Period), sales.TransformDefaultApplied)
	}

	logger := c.Logger.WithFields(logrus.Fields{"vendor": c.Vendor.ID, "year": c.Period.Year, "month": c.Period.Month})
	c.Logger = logger

	strategy, known := StrategyFor(c.Vendor.ID)
	if !known || c.Vendor.ID == reseller.Generic {
		logger.Info("unrecognized vendor, passing rows through")
		log.Note(sales.TransformVendorFallback, "", c.Vendor.ID)
	}

	result := strategy.Clean(ctx, sheet, c)
	if result.Log != nil {
		log.Append(result.Log)
	}
	logger.WithFields(logrus.Fields{"rows_before": sheet.Len(), "rows_after": len(result.Rows)}).Debug("sheet cleaned")
	return Result{Rows: result.Rows, Log: log, Period: c.Period}
}

func formatPeriod(p sales.Period) string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
