package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// FileScope restricts the file builtins to a base directory. Every path that
// the model supplies is resolved relative to Base and must stay inside it.
type FileScope struct {
	Base string
}

// Resolve joins p onto the scope, rejecting escapes via .. or absolute
// paths.
func (s FileScope) Resolve(p string) (string, error) {
	if s.Base == "" {
		return "", fmt.Errorf("file scope has no base directory")
	}
	joined := filepath.Join(s.Base, p)
	base := filepath.Clean(s.Base)
	if joined != base && !strings.HasPrefix(joined, base+string(filepath.Separator)) {
		return "", fmt.Errorf("path '%v' escapes the sandbox", p)
	}
	return joined, nil
}

type ListFilesTool struct {
	Scope FileScope
}

var listFilesSpec = models.Specification{
	Name:        "list_files",
	Description: "List files in a folder inside the sandbox.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: make([]string, 0),
		Properties: map[string]models.ParameterObject{
			"folder": {
				Type:        "string",
				Description: "Folder relative to the sandbox root. Defaults to the root.",
			},
		},
	},
}

func (t ListFilesTool) Call(input models.Input) (string, error) {
	folder, _ := input["folder"].(string)
	dir, err := t.Scope.Resolve(folder)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list folder: %w", err)
	}
	var sb strings.Builder
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		sb.WriteString(name + "\n")
	}
	return sb.String(), nil
}

func (t ListFilesTool) Specification() models.Specification {
	return listFilesSpec
}

type ReadFileTool struct {
	Scope FileScope
}

var readFileSpec = models.Specification{
	Name:        "read_file",
	Description: "Read the contents of a file inside the sandbox.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: []string{"filename"},
		Properties: map[string]models.ParameterObject{
			"filename": {
				Type:        "string",
				Description: "File path relative to the sandbox root.",
			},
		},
	},
}

func (t ReadFileTool) Call(input models.Input) (string, error) {
	filename, ok := input["filename"].(string)
	if !ok || filename == "" {
		return "", fmt.Errorf("filename must be a non-empty string")
	}
	p, err := t.Scope.Resolve(filename)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func (t ReadFileTool) Specification() models.Specification {
	return readFileSpec
}

type WriteFileTool struct {
	Scope FileScope
}

var writeFileSpec = models.Specification{
	Name:        "write_file",
	Description: "Write content to a file inside the sandbox, creating parent folders as needed.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: []string{"filename", "content"},
		Properties: map[string]models.ParameterObject{
			"filename": {
				Type:        "string",
				Description: "File path relative to the sandbox root.",
			},
			"content": {
				Type:        "string",
				Description: "The full content to write.",
			},
		},
	},
}

func (t WriteFileTool) Call(input models.Input) (string, error) {
	filename, ok := input["filename"].(string)
	if !ok || filename == "" {
		return "", fmt.Errorf("filename must be a non-empty string")
	}
	content, ok := input["content"].(string)
	if !ok {
		return "", fmt.Errorf("content must be a string")
	}
	p, err := t.Scope.Resolve(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create parent folder: %w", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fmt.Sprintf("wrote %v bytes to %v", len(content), filename), nil
}

func (t WriteFileTool) Specification() models.Specification {
	return writeFileSpec
}

type RenameFileTool struct {
	Scope FileScope
}

var renameFileSpec = models.Specification{
	Name:        "rename_file",
	Description: "Rename or move a file inside the sandbox.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: []string{"from", "to"},
		Properties: map[string]models.ParameterObject{
			"from": {
				Type:        "string",
				Description: "Current file path relative to the sandbox root.",
			},
			"to": {
				Type:        "string",
				Description: "New file path relative to the sandbox root.",
			},
		},
	},
}

func (t RenameFileTool) Call(input models.Input) (string, error) {
	from, ok := input["from"].(string)
	if !ok || from == "" {
		return "", fmt.Errorf("from must be a non-empty string")
	}
	to, ok := input["to"].(string)
	if !ok || to == "" {
		return "", fmt.Errorf("to must be a non-empty string")
	}
	fromPath, err := t.Scope.Resolve(from)
	if err != nil {
		return "", err
	}
	toPath, err := t.Scope.Resolve(to)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(toPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create parent folder: %w", err)
	}
	if err := os.Rename(fromPath, toPath); err != nil {
		return "", fmt.Errorf("failed to rename file: %w", err)
	}
	return fmt.Sprintf("renamed %v to %v", from, to), nil
}

func (t RenameFileTool) Specification() models.Specification {
	return renameFileSpec
}
