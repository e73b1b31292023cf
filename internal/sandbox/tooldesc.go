// Package sandbox owns the on-disk tool workspace: tool code and metadata
// layout, git versioning, dependency syncing, dynamic loading into the tool
// registry and execution of tool scripts.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

const (
	// SrcDir holds the tool scripts relative to the sandbox root.
	SrcDir = "src/sandbox"
	// MetadataDir holds the tool metadata relative to the sandbox root.
	MetadataDir = "src/metadata"
)

var snakeCaseRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidToolName reports whether name is a snake_case identifier. Tool names
// double as file names and code identifiers, so anything else is rejected.
func ValidToolName(name string) bool {
	return snakeCaseRe.MatchString(name)
}

// ToolDescription describes one sandbox tool, needed or existing. It is also
// the structured output shape the coder phase replies with.
type ToolDescription struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Code         string              `json:"code,omitempty"`
	Dependencies []string            `json:"dependencies"`
	Existing     bool                `json:"existing"`
	NeedsReview  bool                `json:"needs_review"`
	InputSchema  *models.InputSchema `json:"input_schema,omitempty"`
}

// ToolPath is the script location relative to the repo root.
func (t ToolDescription) ToolPath() string {
	return filepath.Join(SrcDir, t.Name+".py")
}

// MetadataPath is the metadata location relative to the repo root.
func (t ToolDescription) MetadataPath() string {
	return filepath.Join(MetadataDir, t.Name+".json")
}

// Save writes the tool code and its metadata under sandboxDir. The code is
// kept out of the metadata file, the script is the single source of truth.
func (t ToolDescription) Save(sandboxDir string) error {
	if !ValidToolName(t.Name) {
		return fmt.Errorf("tool name '%v' is not a snake_case identifier", t.Name)
	}
	toolPath := filepath.Join(sandboxDir, t.ToolPath())
	if err := os.MkdirAll(filepath.Dir(toolPath), os.FileMode(0o755)); err != nil {
		return fmt.Errorf("failed to create tool dir: %w", err)
	}
	if err := utils.WriteText(toolPath, t.Code); err != nil {
		return fmt.Errorf("failed to save tool code: %w", err)
	}
	meta := t
	meta.Code = ""
	metaPath := filepath.Join(sandboxDir, t.MetadataPath())
	if err := os.MkdirAll(filepath.Dir(metaPath), os.FileMode(0o755)); err != nil {
		return fmt.Errorf("failed to create metadata dir: %w", err)
	}
	if err := utils.WriteFile(metaPath, &meta); err != nil {
		return fmt.Errorf("failed to save tool metadata: %w", err)
	}
	return nil
}

// Load reads the tool named name from sandboxDir, metadata plus code.
func Load(sandboxDir, name string) (ToolDescription, error) {
	metaPath := filepath.Join(sandboxDir, MetadataDir, name+".json")
	var tool ToolDescription
	if err := utils.ReadAndUnmarshal(metaPath, &tool); err != nil {
		return ToolDescription{}, fmt.Errorf("failed to read tool metadata: %w", err)
	}
	tool.Name = name
	code, err := utils.ReadText(filepath.Join(sandboxDir, SrcDir, name+".py"))
	if err != nil {
		return ToolDescription{}, fmt.Errorf("failed to read tool code: %w", err)
	}
	tool.Code = code
	return tool, nil
}

// LoadCode refreshes only the code from disk, reporting whether the script
// exists.
func (t *ToolDescription) LoadCode(sandboxDir string) (bool, error) {
	path := filepath.Join(sandboxDir, t.ToolPath())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	code, err := utils.ReadText(path)
	if err != nil {
		return false, fmt.Errorf("failed to read tool code: %w", err)
	}
	t.Code = code
	return true, nil
}
