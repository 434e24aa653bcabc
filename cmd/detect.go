package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sellout/config"
	"sellout/importer"
)

var (
	detectInputs []string
	detectVendor string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show reseller, sheet and reporting period detected for files",
	Long: `Open each file and print the reseller format, the selected sheet and the reporting period
that ingest would use. Nothing is cleaned or stored.`,
	Example: `
  sellout detect -i "Skins SA BIBBI CY 2025 February.xlsx" -i ./unknown.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		vendors, err := loadVendorTable(cfg.Vendors.File)
		if err != nil {
			return err
		}

		pipeline := importer.NewPipeline(vendors, nil, nil, 1)
		for _, path := range detectInputs {
			detection, err := pipeline.Detect(path, importer.Options{Vendor: detectVendor})
			if err != nil {
				return err
			}
			printDetection(cmd.OutOrStdout(), detection)
		}
		return nil
	},
}

func printDetection(out io.Writer, detection *importer.Detection) {
	vendor := detection.Vendor
	if !detection.Known {
		vendor += " (unrecognized)"
	}
	period := fmt.Sprintf("%04d-%02d", detection.Period.Year, detection.Period.Month)
	switch {
	case detection.Defaulted:
		period += " (default)"
	case detection.Pattern != "":
		period += " (" + detection.Pattern + ")"
	}

	fmt.Fprintf(out, "%s\n  vendor: %s\n  sheet:  %s (of %s)\n  period: %s\n",
		detection.Path, vendor, detection.Sheet, strings.Join(detection.Sheets, ", "), period)
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringArrayVarP(&detectInputs, "input", "i", nil, "Input file path (repeatable)")
	detectCmd.Flags().StringVar(&detectVendor, "vendor", "", "Reseller id to use instead of detection")

	_ = detectCmd.MarkFlagRequired("input")
}
