package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sellout/cleaner"
	"sellout/importer"
	"sellout/reseller"
	"sellout/sales"
	"sellout/storage"
)

var (
	catalogProductsPath string
	catalogAliasesPath  string
	catalogDBPath       string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog used for identity resolution.",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load products and name aliases into the catalog",
	Long: `Upsert products (by EAN) and name aliases from CSV or Excel files.

Products file columns: ean, functional_name, liberty_name (optional), galilu_name (optional).
Aliases file columns: alias, functional_name.`,
	Example: `
  sellout catalog import --products ./products.csv
  sellout catalog import --products ./products.xlsx --aliases ./aliases.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := readCatalogEntries(catalogProductsPath)
		if err != nil {
			return err
		}
		var aliases []storage.Alias
		if catalogAliasesPath != "" {
			aliases, err = readAliases(catalogAliasesPath)
			if err != nil {
				return err
			}
		}

		a, err := newApp(cmd.Context(), catalogDBPath)
		if err != nil {
			return err
		}
		defer a.Close()

		products, err := a.store.ImportCatalog(cmd.Context(), entries)
		if err != nil {
			return err
		}
		imported, err := a.store.ImportAliases(cmd.Context(), aliases)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog import completed. Products: %d, Aliases: %d\n", products, imported)
		return nil
	},
}

// readTableRows reads the first sheet of a CSV or Excel file as header-keyed
// rows.
func readTableRows(path string) ([]sales.Row, error) {
	workbook, err := importer.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	names := workbook.SheetNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	sheet, err := workbook.ReadSheet(names[0], reseller.CellsRaw)
	if err != nil {
		return nil, err
	}
	if sheet.Len() == 0 {
		return nil, nil
	}

	headers := sheet.Rows[0]
	rows := make([]sales.Row, 0, sheet.Len()-1)
	for i := 1; i < sheet.Len(); i++ {
		if sheet.RowBlank(i) {
			continue
		}
		row := sales.NewRow(i)
		for col, header := range headers {
			value, _ := sheet.Cell(i, col)
			row.Set(header, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readCatalogEntries(path string) ([]sales.CatalogEntry, error) {
	rows, err := readTableRows(path)
	if err != nil {
		return nil, err
	}
	entries := make([]sales.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		ean := cleaner.PadEAN(row.Get("ean", "product_ean", "ean_code"))
		if len(ean) != 13 {
			continue
		}
		entries = append(entries, sales.CatalogEntry{
			EAN:            ean,
			FunctionalName: row.Get("functional_name", "name"),
			LibertyName:    row.Get("liberty_name"),
			GaliluName:     row.Get("galilu_name"),
		})
	}
	return entries, nil
}

func readAliases(path string) ([]storage.Alias, error) {
	rows, err := readTableRows(path)
	if err != nil {
		return nil, err
	}
	aliases := make([]storage.Alias, 0, len(rows))
	for _, row := range rows {
		aliases = append(aliases, storage.Alias{
			Alias:          row.Get("alias"),
			FunctionalName: row.Get("functional_name", "name"),
		})
	}
	return aliases, nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)

	catalogImportCmd.Flags().StringVar(&catalogProductsPath, "products", "", "Products file (CSV or Excel)")
	catalogImportCmd.Flags().StringVar(&catalogAliasesPath, "aliases", "", "Aliases file (CSV or Excel)")
	catalogImportCmd.Flags().StringVar(&catalogDBPath, "db", "", "Path to SQLite database (default: storage.db_path)")

	_ = catalogImportCmd.MarkFlagRequired("products")
}
