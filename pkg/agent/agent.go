package agent

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/paulrobello/auto-tool-agent/internal"
	"github.com/paulrobello/auto-tool-agent/internal/pipeline"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

type Agent struct {
	provider       string
	model          string
	systemPrompt   string
	dataDir        string
	sandboxDir     string
	outputFormat   string
	maxIterations  int
	toolCallBudget int
	clearSandbox   bool

	completerCreator func(conf internal.AgentConfig) (pipeline.ToolCompleter, error)

	out io.Writer

	pipe *pipeline.Agent
}

var defaultConf = Agent{
	provider:         "anthropic",
	outputFormat:     "none",
	maxIterations:    25,
	toolCallBudget:   10,
	completerCreator: internal.CreateCompleter,
	out:              io.Discard,
}

type Option func(*Agent)

func New(options ...Option) Agent {
	conf := defaultConf
	dataDir, err := utils.GetDataDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		if home == "" {
			home = "."
		}
		dataDir = path.Join(home, ".auto-tool-agent")
	}
	conf.dataDir = dataDir

	for _, o := range options {
		o(&conf)
	}
	if conf.sandboxDir == "" {
		conf.sandboxDir = utils.DefaultSandboxDir(conf.dataDir)
	}
	return conf
}

func WithProvider(provider string) Option {
	return func(a *Agent) {
		a.provider = provider
	}
}

func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

// WithSystemPrompt replaces the built in results prompt for the final
// answering step.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.systemPrompt = prompt
	}
}

func WithDataDir(dataDir string) Option {
	return func(a *Agent) {
		a.dataDir = utils.ExpandUser(dataDir)
	}
}

func WithSandboxDir(sandboxDir string) Option {
	return func(a *Agent) {
		a.sandboxDir = utils.ExpandUser(sandboxDir)
	}
}

// WithClearSandbox wipes the accumulated tools before the first run.
func WithClearSandbox() Option {
	return func(a *Agent) {
		a.clearSandbox = true
	}
}

func WithMaxIterations(maxIterations int) Option {
	return func(a *Agent) {
		a.maxIterations = maxIterations
	}
}

func WithToolCallBudget(budget int) Option {
	return func(a *Agent) {
		a.toolCallBudget = budget
	}
}

// WithOutputFormat sets one of markdown, json, csv, text or none. Anything
// but none costs an extra model round trip per run.
func WithOutputFormat(format string) Option {
	return func(a *Agent) {
		a.outputFormat = format
	}
}

// WithOutputTo also writes each run's result to out.
func WithOutputTo(out io.Writer) Option {
	return func(a *Agent) {
		a.out = out
	}
}

func (a *Agent) asInternalConfig() pipeline.Config {
	systemPrompt := a.systemPrompt
	if systemPrompt == "" {
		systemPrompt = prompts.Results
	}
	return pipeline.Config{
		DataDir:        a.dataDir,
		SandboxDir:     a.sandboxDir,
		ClearSandbox:   a.clearSandbox,
		OutputFormat:   a.outputFormat,
		SystemPrompt:   systemPrompt,
		MaxIterations:  a.maxIterations,
		ToolCallBudget: a.toolCallBudget,
		Quiet:          true,
	}
}

func (a *Agent) Setup() error {
	if err := utils.CreateDataDir(a.dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	completer, err := a.completerCreator(internal.AgentConfig{
		Provider: a.provider,
		Model:    a.model,
	})
	if err != nil {
		return fmt.Errorf("agent.Setup failed to create completer: %w", err)
	}
	pipe, err := pipeline.New(a.asInternalConfig(), completer)
	if err != nil {
		return fmt.Errorf("agent.Setup failed to create pipeline: %w", err)
	}
	a.pipe = pipe
	return nil
}
