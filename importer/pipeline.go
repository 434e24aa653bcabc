package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sellout/catalog"
	"sellout/cleaner"
	"sellout/normalize"
	"sellout/period"
	"sellout/reseller"
	"sellout/sales"
)

// Options adjust one invocation. Vendor skips detection; Filename is the
// name used for detection and period extraction when the file on disk has a
// different one, as with uploads.
type Options struct {
	Vendor   string
	Filename string
}

// Result is everything one invocation produced.
type Result struct {
	Path            string
	Filename        string
	Vendor          string
	Sheet           string
	Period          sales.Period
	RowsRead        int
	RowsCleaned     int
	Facts           []sales.Fact
	Transformations []sales.TransformationRecord
}

// Detection is what the pipeline decides about a file before cleaning it.
type Detection struct {
	Path      string
	Vendor    string
	Known     bool
	Sheets    []string
	Sheet     string
	Period    sales.Period
	Pattern   string
	Defaulted bool
}

type Pipeline struct {
	vendors    *reseller.Table
	resolver   *catalog.Resolver
	normalizer *normalize.Normalizer
	logger     logrus.FieldLogger
	workers    int
}

func NewPipeline(vendors *reseller.Table, resolver *catalog.Resolver, logger logrus.FieldLogger, workers int) *Pipeline {
	if vendors == nil {
		vendors = reseller.Default()
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		vendors:    vendors,
		resolver:   resolver,
		normalizer: normalize.New(vendors, logger),
		logger:     logger,
		workers:    workers,
	}
}

// Process runs one workbook through detection, cleaning and normalization.
// Only unreadable input fails; everything else is reflected in the facts
// and the transformation log.
func (p *Pipeline) Process(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workbook, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	filename := displayName(path, opts)
	detection, err := p.detect(workbook, path, filename, opts)
	if err != nil {
		return nil, err
	}
	vendor := p.vendors.Get(detection.Vendor)
	logger := p.logger.WithFields(logrus.Fields{"file": filename, "vendor": vendor.ID, "sheet": detection.Sheet})

	sheet, err := workbook.ReadSheet(detection.Sheet, vendor.Cells)
	if err != nil {
		return nil, err
	}

	cleaned := cleaner.Clean(ctx, sheet, cleaner.Context{
		Vendor:   vendor,
		Filename: filename,
		Resolver: p.resolver,
		Logger:   logger,
	})
	rows := cleaner.Common(cleaned.Rows, vendor, cleaned.Log)
	facts := p.normalizer.Normalize(rows, vendor.ID, cleaned.Period, cleaned.Log)

	logger.WithFields(logrus.Fields{
		"rows_read":    sheet.Len(),
		"rows_cleaned": len(rows),
		"facts":        len(facts),
	}).Info("workbook processed")

	return &Result{
		Path:            path,
		Filename:        filename,
		Vendor:          vendor.ID,
		Sheet:           detection.Sheet,
		Period:          cleaned.Period,
		RowsRead:        sheet.Len(),
		RowsCleaned:     len(rows),
		Facts:           facts,
		Transformations: cleaned.Log.Records(),
	}, nil
}

// ProcessAll processes the workbooks concurrently and returns their results
// in input order. The first failure cancels the remaining invocations.
func (p *Pipeline) ProcessAll(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)

	for i, path := range paths {
		group.Go(func() error {
			result, err := p.Process(groupCtx, path, opts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Detect reports the vendor, sheet and period the pipeline would use for
// the workbook.
func (p *Pipeline) Detect(path string, opts Options) (*Detection, error) {
	workbook, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	filename := displayName(path, opts)
	detection, err := p.detect(workbook, path, filename, opts)
	if err != nil {
		return nil, err
	}

	sheet, err := workbook.ReadSheet(detection.Sheet, p.vendors.Get(detection.Vendor).Cells)
	if err != nil {
		return nil, err
	}
	extracted := period.Extract(detection.Vendor, filename, sheet)
	detection.Period = extracted.Period
	detection.Pattern = extracted.Pattern
	detection.Defaulted = extracted.Defaulted
	return detection, nil
}

func (p *Pipeline) detect(workbook Workbook, path, filename string, opts Options) (*Detection, error) {
	sheets := workbook.SheetNames()
	if len(sheets) == 0 {
		return nil, malformed("workbook %s has no sheets", path)
	}

	vendorID := strings.ToLower(strings.TrimSpace(opts.Vendor))
	if vendorID == "" {
		vendorID = p.vendors.Detect(filename, sheets)
	}
	return &Detection{
		Path:   path,
		Vendor: vendorID,
		Known:  p.vendors.Known(vendorID) && vendorID != reseller.Generic,
		Sheets: sheets,
		Sheet:  p.vendors.SelectSheet(vendorID, sheets),
	}, nil
}

func displayName(path string, opts Options) string {
	if name := strings.TrimSpace(opts.Filename); name != "" {
		return filepath.Base(name)
	}
	return filepath.Base(path)
}

// String renders a one-line summary of the result.
func (r *Result) String() string {
	return fmt.Sprintf("%s: vendor=%s sheet=%q period=%04d-%02d rows=%d cleaned=%d facts=%d",
		r.Filename, r.Vendor, r.Sheet, r.Period.Year, r.Period.Month, r.RowsRead, r.RowsCleaned, len(r.Facts))
}
