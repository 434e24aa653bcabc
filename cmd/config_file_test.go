package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		flag   string
		loaded string
		want   string
	}{
		{name: "flag wins", flag: "./ops.yaml", loaded: "/etc/sellout.yaml", want: "./ops.yaml"},
		{name: "loaded file", loaded: "/etc/sellout.yaml", want: "/etc/sellout.yaml"},
		{name: "home fallback", flag: "  ", want: filepath.Join(home, ".sellout.yaml")},
	}

	for _, tt := range tests {
		got, err := configFilePath(tt.flag, tt.loaded)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestWriteConfigTemplateCreatesDirectoriesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sellout.yaml")

	created, err := writeConfigTemplate(path, false)
	if err != nil || !created {
		t.Fatalf("expected template to be created, got created=%v err=%v", created, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected error stat config file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected config file mode 0600, got %o", info.Mode().Perm())
	}

	created, err = writeConfigTemplate(path, true)
	if err != nil || created {
		t.Fatalf("existing file must be kept, got created=%v err=%v", created, err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), vendorsFileName)); !os.IsNotExist(err) {
		t.Fatalf("vendors file must not be written for an existing config")
	}
}

func TestValidateConfigFileRejectsBrokenVendorTable(t *testing.T) {
	dir := t.TempDir()
	vendors := filepath.Join(dir, "vendors.yaml")
	if err := os.WriteFile(vendors, []byte("vendors:\n  - id: boxnox\n"), 0o600); err != nil {
		t.Fatalf("write vendors file: %v", err)
	}
	path := filepath.Join(dir, "sellout.yaml")
	if err := os.WriteFile(path, []byte("vendors:\n  file: "+vendors+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := validateConfigFile(path); err == nil {
		t.Fatalf("expected error for vendor without currency")
	}
}

func TestEditorCommand(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{name: "visual with args", env: map[string]string{"VISUAL": "code --wait", "EDITOR": "nano"}, want: []string{"code", "--wait", "/tmp/cfg.yaml"}},
		{name: "editor fallback", env: map[string]string{"VISUAL": " ", "EDITOR": "nano"}, want: []string{"nano", "/tmp/cfg.yaml"}},
		{name: "default vi", env: map[string]string{}, want: []string{"vi", "/tmp/cfg.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := editorCommand(env(tt.env), "/tmp/cfg.yaml")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cmd.Args) != len(tt.want) {
				t.Fatalf("expected args %v, got %v", tt.want, cmd.Args)
			}
			for i := range tt.want {
				if cmd.Args[i] != tt.want[i] {
					t.Fatalf("expected args %v, got %v", tt.want, cmd.Args)
				}
			}
		})
	}
}
