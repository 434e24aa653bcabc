package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateWithVendors bool

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the example template.

With --with-vendors the built-in reseller table is written to .sellout-vendors.yaml next to the
config and referenced from vendors.file, so reseller tokens, sheet patterns and currencies can be
edited. An existing config file is never overwritten.`,
	Example: `
  # Create default config at $HOME/.sellout.yaml
  sellout config create

  # Also export the reseller table for editing
  sellout config create --with-vendors
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createConfig(cmd.OutOrStdout(), configCreateWithVendors)
	},
}

func createConfig(out io.Writer, withVendors bool) error {
	path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := writeConfigTemplate(path, withVendors)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(out, "Config file already exists at: %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "New config file created at: %s\n", path)
	if withVendors {
		fmt.Fprintln(out, "Reseller table written to", vendorsFileName)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateWithVendors, "with-vendors", false, "Also write the built-in reseller table and reference it")
}
