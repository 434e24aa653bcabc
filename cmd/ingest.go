package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sellout/importer"
	"sellout/storage"
)

var (
	ingestInputs []string
	ingestVendor string
	ingestDBPath string
	ingestDryRun bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Clean, normalize and store reseller sell-out files",
	Long: `Read reseller workbooks, detect the reseller format, clean and normalize every row and
persist the resulting sales facts with their transformation log in SQLite.

The reseller is detected from the filename, then from the sheet names. Use --vendor to skip
detection. Files are processed concurrently (ingest.workers); an unreadable file aborts the run
before anything is stored.`,
	Example: `
  # Ingest two files
  sellout ingest -i "BOXNOX - BIBBI Monthly Sales Report APR2025.xlsx" -i BIBBIPARFU_ReportPeriod02-2025.xlsx

  # Force the reseller format
  sellout ingest -i ./export.xlsx --vendor liberty

  # Show what would be stored without writing
  sellout ingest -i ./export.xlsx --dry-run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, ingestDBPath)
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.pipeline.ProcessAll(ctx, ingestInputs, importer.Options{Vendor: ingestVendor})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ingestDryRun {
			printIngestSummary(out, results, nil)
			return nil
		}

		uploads := make([]storage.Upload, 0, len(results))
		for _, result := range results {
			upload, err := persistResult(cmd, a, result)
			if err != nil {
				return err
			}
			uploads = append(uploads, upload)
		}
		printIngestSummary(out, results, uploads)
		return nil
	},
}

func persistResult(cmd *cobra.Command, a *app, result *importer.Result) (storage.Upload, error) {
	ctx := cmd.Context()
	upload := storage.NewUpload(result.Filename, result.Vendor, result.Sheet, result.Period, result.RowsRead, result.RowsCleaned)
	saved, err := a.store.SaveUpload(ctx, upload, result.Facts, a.cfg.Storage.BatchSize)
	if err != nil {
		return storage.Upload{}, fmt.Errorf("store %s: %w", result.Filename, err)
	}

	logger := a.logger.WithFields(logrus.Fields{"upload_id": saved.ID, "vendor": saved.Vendor})
	if err := a.store.AppendTransformations(ctx, saved.ID, result.Transformations); err != nil {
		logger.WithError(err).Warn("transformation log not stored")
	}
	logger.WithField("facts", saved.FactCount).Info("upload stored")
	return saved, nil
}

func printIngestSummary(out io.Writer, results []*importer.Result, uploads []storage.Upload) {
	facts := 0
	for i, result := range results {
		facts += len(result.Facts)
		line := result.String()
		if i < len(uploads) {
			line += " upload=" + uploads[i].ID
		}
		fmt.Fprintln(out, line)
	}

	mode := "stored"
	if uploads == nil {
		mode = "dry run, nothing stored"
	}
	fmt.Fprintf(out, "Ingest completed (%s). Files: %d, Facts: %d\n", mode, len(results), facts)
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringArrayVarP(&ingestInputs, "input", "i", nil, "Input file path (repeatable)")
	ingestCmd.Flags().StringVar(&ingestVendor, "vendor", "", "Reseller id to use instead of detection")
	ingestCmd.Flags().StringVar(&ingestDBPath, "db", "", "Path to SQLite database (default: storage.db_path)")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Process files without storing anything")

	_ = ingestCmd.MarkFlagRequired("input")
}

