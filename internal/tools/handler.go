package tools

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// Registry is the global registry of available LLM tools. Builtins are added
// by Init, generated tools by the sandbox loader.
var Registry = NewRegistry()

// Init initializes the global Registry with the builtin tools. File tools
// are scoped to sandboxDir. If the Registry has already been initialized, it
// simply returns.
func Init(sandboxDir string) {
	if Registry.hasBeenInit {
		return
	}
	Registry.hasBeenInit = true
	Registry.Set(GetNow.Specification().Name, GetNow)
	Registry.Set(GetEnvVars.Specification().Name, GetEnvVars)
	Registry.Set(WebsiteText.Specification().Name, WebsiteText)
	scope := FileScope{Base: sandboxDir}
	Registry.Set(ListFilesTool{scope}.Specification().Name, ListFilesTool{scope})
	Registry.Set(ReadFileTool{scope}.Specification().Name, ReadFileTool{scope})
	Registry.Set(WriteFileTool{scope}.Specification().Name, WriteFileTool{scope})
	Registry.Set(RenameFileTool{scope}.Specification().Name, RenameFileTool{scope})
}

// Invoke the call, and gather both error and output in the same string. The
// model sees tool failures as output and may retry or repair; only the
// orchestrator treats them specially.
func Invoke(call models.Call) string {
	t, exists := Registry.Get(call.Name)
	if !exists {
		return "ERROR: unknown tool call: " + call.Name
	}
	if misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("Invoke call: %v", debug.IndentedJsonFmt(call))
	}
	inp := models.Input{}
	if call.Inputs != nil {
		inp = *call.Inputs
	}
	if err := ValidateInput(t.Specification(), inp); err != nil {
		return fmt.Sprintf("ERROR: invalid input for tool: %v, error: %v", call.Name, err)
	}
	out, err := t.Call(inp)
	if err != nil {
		return fmt.Sprintf("ERROR: failed to run tool: %v, error: %v", call.Name, err)
	}
	return out
}

// ToolFromName returns the Specification for a registered tool, or an empty
// Specification when unknown.
func ToolFromName(name string) models.Specification {
	t, exists := Registry.Get(name)
	if !exists {
		return models.Specification{}
	}
	return t.Specification()
}
