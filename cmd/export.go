package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sellout/output"
)

var (
	exportFormat   string
	exportMode     string
	exportOutput   string
	exportDBPath   string
	exportUploadID string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored facts or the transformation log to CSV/Excel",
	Long: `Export data of one upload from SQLite.

Modes:
- facts: the canonical sales facts
- audit: the transformation log in insertion order
- summary: quantity and EUR totals per reseller and month

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export facts to Excel
  sellout export --upload <id> --output ./facts.xlsx

  # Export the audit trail to CSV
  sellout export --upload <id> --mode audit --output ./audit.csv

  # Monthly totals
  sellout export --upload <id> --mode summary --output ./summary.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), exportDBPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		var table output.Table
		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "facts":
			mode = "facts"
			facts, err := a.store.ListFacts(ctx, exportUploadID)
			if err != nil {
				return err
			}
			table = output.FactsTable(facts)
		case "audit":
			records, err := a.store.ListTransformations(ctx, exportUploadID)
			if err != nil {
				return err
			}
			table = output.TransformationsTable(records)
		case "summary":
			facts, err := a.store.ListFacts(ctx, exportUploadID)
			if err != nil {
				return err
			}
			table = output.SummaryTable(output.BuildPeriodSummaries(facts))
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: facts, audit, summary)", exportMode)
		}

		if err := writer.Write(exportOutput, table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Rows: %d, Mode: %s, Format: %s, File: %s\n", len(table.Rows), mode, format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportUploadID, "upload", "", "Upload id to export")
	exportCmd.Flags().StringVar(&exportMode, "mode", "facts", "Export mode: facts|audit|summary")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to SQLite database (default: storage.db_path)")

	_ = exportCmd.MarkFlagRequired("upload")
	_ = exportCmd.MarkFlagRequired("output")
}
