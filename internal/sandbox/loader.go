package sandbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
)

// ToolRegistry is what the loader needs from the tools registry.
type ToolRegistry interface {
	Set(name string, t tools.LLMTool)
	SetBad(name, loadErr string)
	Get(name string) (tools.LLMTool, bool)
	Names() []string
	Bad() map[string]string
}

// scriptTool adapts a sandbox tool script into an LLMTool by delegating
// execution to the runner.
type scriptTool struct {
	desc   ToolDescription
	runner *Runner
}

func (s scriptTool) Call(input models.Input) (string, error) {
	return s.runner.Run(context.Background(), s.desc.Name, input)
}

func (s scriptTool) Specification() models.Specification {
	inputs := s.desc.InputSchema
	if inputs == nil {
		inputs = &models.InputSchema{Type: "object"}
	}
	return models.Specification{
		Name:        s.desc.Name,
		Description: s.desc.Description,
		Inputs:      inputs,
	}
}

// Loader scans the sandbox and registers every tool script which has valid
// metadata. Scripts which fail to load are remembered as bad tools so the
// planner can schedule their repair.
type Loader struct {
	sandbox  *Sandbox
	runner   *Runner
	registry ToolRegistry
}

func NewLoader(sb *Sandbox, runner *Runner, registry ToolRegistry) *Loader {
	return &Loader{sandbox: sb, runner: runner, registry: registry}
}

// LoadAll scans the tool dir and (re)registers everything found. It returns
// the names it registered this pass.
func (l *Loader) LoadAll() ([]string, error) {
	srcDir := filepath.Join(l.sandbox.Dir, SrcDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool dir: %w", err)
	}
	var loaded []string
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".py") {
			continue
		}
		if strings.HasPrefix(fileName, "_") || strings.HasPrefix(fileName, ".") {
			continue
		}
		name := strings.TrimSuffix(fileName, ".py")
		if err := l.LoadOne(name); err != nil {
			l.registry.SetBad(name, err.Error())
			continue
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}

// LoadOne loads and registers a single tool by name.
func (l *Loader) LoadOne(name string) error {
	if !ValidToolName(name) {
		return fmt.Errorf("tool name '%v' is not a snake_case identifier", name)
	}
	desc, err := Load(l.sandbox.Dir, name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(desc.Code) == "" {
		return fmt.Errorf("tool '%v' has no code", name)
	}
	if strings.TrimSpace(desc.Description) == "" {
		return fmt.Errorf("tool '%v' has no description", name)
	}
	l.registry.Set(name, scriptTool{desc: desc, runner: l.runner})
	return nil
}

// Descriptions renders every registered and bad tool for the planner prompt,
// matching the layout the planner instructions reference.
func Descriptions(registry ToolRegistry) string {
	var sb strings.Builder
	divider := strings.Repeat("=", 50) + "\n"
	for _, name := range registry.Names() {
		tool, ok := registry.Get(name)
		if !ok {
			continue
		}
		sb.WriteString(divider)
		fmt.Fprintf(&sb, "Tool_Name: %v\n", name)
		fmt.Fprintf(&sb, "Description: %v\n", tool.Specification().Description)
		sb.WriteString(divider + "\n")
	}
	bad := registry.Bad()
	if len(bad) > 0 {
		sb.WriteString("The following tools have errors that need to be fixed:\n")
		for name, loadErr := range bad {
			sb.WriteString(divider)
			fmt.Fprintf(&sb, "Tool_Name: %v\n", name)
			fmt.Fprintf(&sb, "Exception: %v\n", loadErr)
			sb.WriteString(divider + "\n")
		}
	}
	return sb.String()
}
