package tools

import (
	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// LLMTool is a tool which may be exposed to an LLM: either a builtin or a
// generated tool loaded from the sandbox.
type LLMTool interface {
	// Call the tool with the given Input. Returns the tool's output, or an
	// error if the invocation itself failed. Tool-internal failures should be
	// returned as output strings so the model can react to them.
	Call(models.Input) (string, error)

	// Specification describes the tool to the vendor clients.
	Specification() models.Specification
}
