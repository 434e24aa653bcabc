package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by sellout, after typing "Y" to confirm.

A reseller table referenced by vendors.file is left in place.`,
	Example: `
  # Delete active config
  sellout config delete

  # Delete config at a custom path
  sellout --configFile ./custom-sellout.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = viper.ConfigFileUsed()
		}
		if path == "" {
			return fmt.Errorf("no configuration file found")
		}

		if err := confirmOrAbort(fmt.Sprintf("Delete configuration file %q?", path)); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file deleted: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
