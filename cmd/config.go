package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sellout configuration file values.",
	Long: `Create, edit, display, and delete the sellout configuration file.

The configuration stores application-wide values:
- storage.db_path / storage.batch_size
- catalog.cache_ttl / catalog.redis_url / catalog.lookup_retries / catalog.retry_delay
- logging.level / logging.format
- ingest.workers
- vendors.file
- server.port / server.max_upload_mb`,
	Example: `
  # Create default config in $HOME/.sellout.yaml
  sellout config create

  # Show active config and source file
  sellout config show

  # Open active config in editor (creates example if missing)
  sellout config edit

  # Delete active config file
  sellout config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
