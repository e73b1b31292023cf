package internal

import (
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// AgentConfig is the persisted configuration, found in
// <data-dir>/agentConfig.json. Flags override file values, file values
// override defaults.
type AgentConfig struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	OutputFormat   string `json:"outputFormat"`
	SystemPrompt   string `json:"systemPrompt"`
	SandboxDir     string `json:"sandboxDir"`
	MaxIterations  int    `json:"maxIterations"`
	ToolCallBudget int    `json:"toolCallBudget"`
}

// DefaultAgentConfig is written on first run.
var DefaultAgentConfig = AgentConfig{
	Provider:       "anthropic",
	OutputFormat:   "markdown",
	MaxIterations:  25,
	ToolCallBudget: 10,
}

func loadAgentConfig(dataDir string) (AgentConfig, error) {
	dflt := DefaultAgentConfig
	return utils.LoadConfigFromFile(dataDir, "agentConfig.json", &dflt)
}

// applyFlagOverrides sets conf fields from the flags which differ from the
// flag defaults, so that file values are only replaced by flags the user
// actually passed.
func applyFlagOverrides(conf *AgentConfig, flagSet, defaultFlags Configurations) {
	if flagSet.Provider != defaultFlags.Provider {
		conf.Provider = flagSet.Provider
	}
	if flagSet.Model != defaultFlags.Model {
		conf.Model = flagSet.Model
	}
	if flagSet.OutputFormat != defaultFlags.OutputFormat {
		conf.OutputFormat = flagSet.OutputFormat
	}
	if flagSet.SystemPrompt != defaultFlags.SystemPrompt {
		conf.SystemPrompt = flagSet.SystemPrompt
	}
	if flagSet.SandboxDir != defaultFlags.SandboxDir {
		conf.SandboxDir = flagSet.SandboxDir
	}
	if flagSet.MaxIterations != defaultFlags.MaxIterations {
		conf.MaxIterations = flagSet.MaxIterations
	}
}
