package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirmDeletePrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "Y\n", want: true},
		{input: "Y", want: true},
		{input: "  Y  \n", want: true},
		{input: "y\n", want: false},
		{input: "yes\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirmDeletePrompt(strings.NewReader(tt.input), &out, "Delete upload abc?")
		if err != nil {
			t.Fatalf("input %q: confirm prompt returned error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
		if out.String() != "Delete upload abc? Type Y to confirm: " {
			t.Fatalf("unexpected prompt output %q", out.String())
		}
	}

	if _, err := confirmDeletePrompt(nil, nil, "Delete?"); err == nil {
		t.Fatalf("expected error without input")
	}
}

func TestConfirmOrAbortUsesPromptStreams(t *testing.T) {
	input, output := deletePromptInput, deletePromptOutput
	t.Cleanup(func() { deletePromptInput, deletePromptOutput = input, output })

	var out bytes.Buffer
	deletePromptOutput = &out

	deletePromptInput = strings.NewReader("Y\n")
	if err := confirmOrAbort("Delete configuration file \"x.yaml\"?"); err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}

	deletePromptInput = strings.NewReader("n\n")
	err := confirmOrAbort("Delete upload 1?")
	if err == nil || !strings.Contains(err.Error(), "delete aborted") {
		t.Fatalf("expected abort error, got %v", err)
	}
	if !strings.Contains(out.String(), "Delete upload 1?") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestDeleteRequiresExactlyOneTarget(t *testing.T) {
	t.Cleanup(func() {
		deleteUploadID, deleteAll = "", false
	})

	for _, tc := range []struct {
		upload string
		all    bool
	}{
		{},
		{upload: "abc", all: true},
	} {
		deleteUploadID, deleteAll = tc.upload, tc.all
		err := deleteCmd.RunE(deleteCmd, nil)
		if err == nil || !strings.Contains(err.Error(), "exactly one of") {
			t.Fatalf("upload=%q all=%v: expected target error, got %v", tc.upload, tc.all, err)
		}
	}
}

func TestRemoveDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "sellout.db")
	if err := os.WriteFile(existing, []byte("x"), 0o600); err != nil {
		t.Fatalf("write temp db file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "existing file", path: existing},
		{name: "directory", path: dir, wantErr: "is a directory"},
		{name: "missing file", path: filepath.Join(dir, "missing.db"), wantErr: "not found"},
	}

	for _, tt := range tests {
		err := removeDatabaseFile(tt.path)
		if tt.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: remove db file: %v", tt.name, err)
			}
			if _, statErr := os.Stat(tt.path); !os.IsNotExist(statErr) {
				t.Fatalf("%s: expected file to be deleted", tt.name)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}
