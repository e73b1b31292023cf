package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDefaults(t *testing.T) {
	dir := t.TempDir()
	promptsDir := filepath.Join(dir, "prompts")
	if err := WriteDefaults(promptsDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	templates, err := List(promptsDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 1 || templates[0].Name != "aws" {
		t.Fatalf("expected seeded aws template, got: %+v", templates)
	}

	t.Run("it should not clobber user edits", func(t *testing.T) {
		custom := "name: aws\ndescription: mine\nprompt: |\n  custom\n"
		awsPath := filepath.Join(promptsDir, "aws.yaml")
		if err := os.WriteFile(awsPath, []byte(custom), 0o644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if err := WriteDefaults(promptsDir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := os.ReadFile(awsPath)
		if err != nil {
			t.Fatalf("failed to read: %v", err)
		}
		if string(got) != custom {
			t.Fatal("expected user edit to survive")
		}
	})
}

func TestResolve(t *testing.T) {
	promptsDir := t.TempDir()
	if err := WriteDefaults(promptsDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("it should default to the results prompt", func(t *testing.T) {
		got, err := Resolve(promptsDir, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Results {
			t.Fatal("expected default results prompt")
		}
	})

	t.Run("it should resolve by template name", func(t *testing.T) {
		got, err := Resolve(promptsDir, "aws")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "AWS data analyst") {
			t.Fatalf("expected aws prompt, got: %v", got)
		}
	})

	t.Run("it should resolve plain text files by path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.txt")
		if err := os.WriteFile(path, []byte("be terse"), 0o644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		got, err := Resolve(promptsDir, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "be terse" {
			t.Fatalf("expected file content, got: %v", got)
		}
	})

	t.Run("it should error on unknown names", func(t *testing.T) {
		if _, err := Resolve(promptsDir, "no-such-template"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestOutputFormat(t *testing.T) {
	for _, format := range []string{"markdown", "json", "csv", "text"} {
		if OutputFormat(format) == "" {
			t.Fatalf("expected prompt for format: %v", format)
		}
	}
	if OutputFormat("none") != "" {
		t.Fatal("expected empty prompt for format none")
	}
}
