package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active sellout config file in $VISUAL, $EDITOR or vi, in that order.

A missing config file is created from the example template first. After the editor exits the
config is validated, together with the reseller table referenced by vendors.file.`,
	Example: `
  # Edit active config
  sellout config edit

  # Edit a custom file
  VISUAL="code --wait" sellout --configFile ./ops.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeConfigTemplate(path, false)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(os.Getenv, path)
		if err != nil {
			return err
		}
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		_, table, err := validateConfigFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Configuration saved and validated: %s (%d resellers)\n", path, len(table.IDs()))
		return nil
	},
}

// editorCommand builds the editor invocation for path. The editor value may
// carry arguments, as in "code --wait".
func editorCommand(getenv func(string) string, path string) (*exec.Cmd, error) {
	value := "vi"
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			value = v
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
