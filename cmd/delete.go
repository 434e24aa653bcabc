package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sellout/config"
)

var (
	deleteDBPath   string
	deleteUploadID string
	deleteAll      bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one upload or the complete SQLite database",
	Long: `Destructive cleanup command.

With --upload, the upload, its facts and its transformation log are removed.
With --all, the complete SQLite database file is deleted.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete one upload
  sellout delete --upload 2f6d3c1e-...

  # Delete the complete SQLite file
  sellout delete --all --db ./sellout.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (deleteUploadID == "") == !deleteAll {
			return fmt.Errorf("exactly one of --upload or --all is required")
		}

		if deleteAll {
			path := deleteDBPath
			if strings.TrimSpace(path) == "" {
				path = viper.GetString(config.KeyStorageDBPath)
			}
			if err := confirmOrAbort(fmt.Sprintf("Delete database file %q?", path)); err != nil {
				return err
			}
			if err := removeDatabaseFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted database file: %s\n", path)
			return nil
		}

		a, err := newApp(cmd.Context(), deleteDBPath)
		if err != nil {
			return err
		}
		defer a.Close()

		upload, err := a.store.GetUpload(cmd.Context(), deleteUploadID)
		if err != nil {
			return err
		}
		if err := confirmOrAbort(fmt.Sprintf("Delete upload %s (%s, %d facts)?", upload.ID, upload.Filename, upload.FactCount)); err != nil {
			return err
		}
		if err := a.store.DeleteUpload(cmd.Context(), upload.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted upload: %s\n", upload.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteUploadID, "upload", "", "Upload id to delete")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete the complete database file")
	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "", "Path to SQLite database (default: storage.db_path)")
}

func confirmOrAbort(question string) error {
	confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, question)
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("delete aborted: confirmation was not 'Y'")
	}
	return nil
}

func confirmDeletePrompt(input io.Reader, output io.Writer, question string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "%s Type Y to confirm: ", question); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
