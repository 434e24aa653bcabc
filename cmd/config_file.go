package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sellout/config"
	"sellout/reseller"
)

const vendorsFileName = ".sellout-vendors.yaml"

// configFilePath picks the file the config commands act on: the --configFile
// flag, then the file viper loaded, then $HOME/.sellout.yaml.
func configFilePath(flagValue, loaded string) (string, error) {
	for _, candidate := range []string{flagValue, loaded} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".sellout.yaml"), nil
}

// writeConfigTemplate writes the example config unless path already exists.
// With withVendors the built-in reseller table is copied next to it and
// referenced from vendors.file. It reports whether anything was written.
func writeConfigTemplate(path string, withVendors bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}

	content := config.ExampleYAML()
	if withVendors {
		vendorsPath, err := filepath.Abs(filepath.Join(dir, vendorsFileName))
		if err != nil {
			return false, fmt.Errorf("resolve vendors file path: %w", err)
		}
		if err := os.WriteFile(vendorsPath, reseller.DefaultYAML(), 0o600); err != nil {
			return false, fmt.Errorf("writing vendors file failed: %w", err)
		}
		content = config.ExampleYAMLWithVendors(vendorsPath)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}
	return true, nil
}

// validateConfigFile checks the config and the vendor table it points at.
func validateConfigFile(path string) (*config.Config, *reseller.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	table, err := loadVendorTable(cfg.Vendors.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}
