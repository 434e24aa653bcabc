/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sellout/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sellout",
	Short: "Clean, normalize and store reseller sell-out reports.",
	Long: `
**********************************************
*              SELL OUT                      *
**********************************************

This CLI reads monthly sell-out workbooks sent by resellers, detects the reseller format,
cleans and normalizes every row into canonical sales facts, and stores the facts together
with a row-level audit trail in a local SQLite database.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
`,
	Example: `
  # Create configuration file
  sellout config create

  # Load the product catalog used for identity resolution
  sellout catalog import --products ./products.csv --aliases ./aliases.csv

  # Show what would be detected for a file
  sellout detect -i "BOXNOX - BIBBI Monthly Sales Report APR2025.xlsx"

  # Ingest reseller files
  sellout ingest -i "BOXNOX - BIBBI Monthly Sales Report APR2025.xlsx" -i BIBBIPARFU_ReportPeriod02-2025.xlsx

  # Export facts or the audit trail of one upload
  sellout export --upload <id> --output ./facts.xlsx
  sellout export --upload <id> --mode audit --output ./audit.csv

  # Serve the upload API
  sellout serve --port 8080
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.sellout.yaml, then ./.sellout.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil || (cmd.HasParent() && cmd.Parent().Name() == "config") {
		return false
	}
	switch cmd.Name() {
	case "ingest", "serve", "export", "delete", "import":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sellout")
	}

	viper.SetEnvPrefix("SELLOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: sellout config create")
	}
}
