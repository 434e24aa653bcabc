package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sellout/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  sellout config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Fprintln(out, "Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file loaded, showing defaults.")
		}
		printConfig(out, cfg)
	},
}

func printConfig(out io.Writer, cfg *config.Config) {
	redisURL := cfg.Catalog.RedisURL
	if redisURL == "" {
		redisURL = "(in-memory cache)"
	}
	vendorsFile := cfg.Vendors.File
	if vendorsFile == "" {
		vendorsFile = "(built-in)"
	}

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "%s: %s\n", config.KeyStorageDBPath, cfg.Storage.DBPath)
	fmt.Fprintf(out, "%s: %d\n", config.KeyStorageBatchSize, cfg.Storage.BatchSize)
	fmt.Fprintf(out, "%s: %s\n", config.KeyCatalogCacheTTL, cfg.Catalog.CacheTTL)
	fmt.Fprintf(out, "%s: %s\n", config.KeyCatalogRedisURL, redisURL)
	fmt.Fprintf(out, "%s: %d\n", config.KeyCatalogLookupRetries, cfg.Catalog.LookupRetries)
	fmt.Fprintf(out, "%s: %s\n", config.KeyCatalogRetryDelay, cfg.Catalog.RetryDelay)
	fmt.Fprintf(out, "%s: %s\n", config.KeyLoggingLevel, cfg.Logging.Level)
	fmt.Fprintf(out, "%s: %s\n", config.KeyLoggingFormat, cfg.Logging.Format)
	fmt.Fprintf(out, "%s: %d\n", config.KeyIngestWorkers, cfg.Ingest.Workers)
	fmt.Fprintf(out, "%s: %s\n", config.KeyVendorsFile, vendorsFile)
	fmt.Fprintf(out, "%s: %d\n", config.KeyServerPort, cfg.Server.Port)
	fmt.Fprintf(out, "%s: %d\n", config.KeyServerMaxUploadMB, cfg.Server.MaxUploadMB)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
