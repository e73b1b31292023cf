package sandbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

func TestValidToolName(t *testing.T) {
	valid := []string{"get_now", "list_s3_buckets", "_private", "a1"}
	for _, name := range valid {
		if !ValidToolName(name) {
			t.Errorf("expected '%v' to be valid", name)
		}
	}
	invalid := []string{"GetNow", "get-now", "1tool", "get now", ""}
	for _, name := range invalid {
		if ValidToolName(name) {
			t.Errorf("expected '%v' to be invalid", name)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	tool := ToolDescription{
		Name:         "get_weather",
		Description:  "Gets the weather for a city.",
		Code:         "def run(args: dict):\n    pass\n",
		Dependencies: []string{"requests"},
		Existing:     false,
		NeedsReview:  true,
		InputSchema: &models.InputSchema{
			Type:     "object",
			Required: []string{"city"},
			Properties: map[string]models.ParameterObject{
				"city": {Type: "string", Description: "City name."},
			},
		},
	}
	if err := tool.Save(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("it should keep code out of the metadata file", func(t *testing.T) {
		raw, err := os.ReadFile(filepath.Join(dir, tool.MetadataPath()))
		if err != nil {
			t.Fatalf("failed to read metadata: %v", err)
		}
		if strings.Contains(string(raw), "def run") {
			t.Fatal("metadata should not contain the code")
		}
	})

	got, err := Load(dir, "get_weather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != tool.Code {
		t.Fatalf("expected code roundtrip, got: %v", got.Code)
	}
	if got.Description != tool.Description || !got.NeedsReview {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	if got.InputSchema == nil || got.InputSchema.Properties["city"].Type != "string" {
		t.Fatalf("schema mismatch: %+v", got.InputSchema)
	}
}

func TestSaveRejectsBadNames(t *testing.T) {
	tool := ToolDescription{Name: "Not Valid", Description: "x", Code: "y"}
	if err := tool.Save(t.TempDir()); err == nil {
		t.Fatal("expected error on invalid name")
	}
}

func TestLoadCode(t *testing.T) {
	dir := t.TempDir()
	tool := ToolDescription{Name: "get_now", Description: "now", Code: "old"}
	if err := tool.Save(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, tool.ToolPath()), []byte("new"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	exists, err := tool.LoadCode(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists || tool.Code != "new" {
		t.Fatalf("expected refreshed code, got exists: %v, code: %v", exists, tool.Code)
	}

	missing := ToolDescription{Name: "nope"}
	exists, err = missing.LoadCode(dir)
	if err != nil || exists {
		t.Fatalf("expected missing tool, got exists: %v, err: %v", exists, err)
	}
}
