package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/paulrobello/auto-tool-agent/internal/llm"
	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
	"github.com/paulrobello/auto-tool-agent/internal/session"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
)

// ToolCompleter is the vendor surface the pipeline needs: completions plus
// tool registration.
type ToolCompleter interface {
	models.Completer
	models.ToolBox
}

// Config carries the per-run settings of the agent.
type Config struct {
	DataDir        string `json:"-"`
	SandboxDir     string `json:"sandboxDir"`
	ClearSandbox   bool   `json:"-"`
	OutputFormat   string `json:"outputFormat"`
	OutputFile     string `json:"-"`
	SystemPrompt   string `json:"-"`
	MaxIterations  int    `json:"maxIterations"`
	ToolCallBudget int    `json:"toolCallBudget"`
	ForceReview    bool   `json:"-"`
	WatchSandbox   bool   `json:"-"`
	// Quiet skips the result file and stdout printing, for library callers
	// which handle the result themselves.
	Quiet bool `json:"-"`
}

// Agent wires the sandbox, the tool registry and a completer into the graph.
type Agent struct {
	cfg       Config
	completer ToolCompleter
	session   session.Session

	sb     *sandbox.Sandbox
	runner *sandbox.Runner
	loader *sandbox.Loader

	planExtractor   *llm.Extractor[planReply]
	coderExtractor  *llm.Extractor[CoderResponse]
	reviewExtractor *llm.Extractor[CodeReviewResponse]
	depsExtractor   *llm.Extractor[DependenciesResponse]
	finalExtractor  *llm.Extractor[FinalResult]
}

// New builds an Agent. The completer must already be Setup by the caller.
func New(cfg Config, completer ToolCompleter) (*Agent, error) {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 25
	}
	if cfg.ToolCallBudget <= 0 {
		cfg.ToolCallBudget = 10
	}
	a := &Agent{
		cfg:       cfg,
		completer: completer,
		session:   session.New(),
	}
	var err error
	if a.planExtractor, err = llm.NewExtractor[planReply](); err != nil {
		return nil, fmt.Errorf("failed to build planner extractor: %w", err)
	}
	if a.coderExtractor, err = llm.NewExtractor[CoderResponse](); err != nil {
		return nil, fmt.Errorf("failed to build coder extractor: %w", err)
	}
	if a.reviewExtractor, err = llm.NewExtractor[CodeReviewResponse](); err != nil {
		return nil, fmt.Errorf("failed to build reviewer extractor: %w", err)
	}
	if a.depsExtractor, err = llm.NewExtractor[DependenciesResponse](); err != nil {
		return nil, fmt.Errorf("failed to build dependency extractor: %w", err)
	}
	if a.finalExtractor, err = llm.NewExtractor[FinalResult](); err != nil {
		return nil, fmt.Errorf("failed to build result extractor: %w", err)
	}
	return a, nil
}

// SessionID returns the run's session ID, used in sandbox commits and state
// file names.
func (a *Agent) SessionID() string {
	return a.session.ID
}

// Run executes the full graph for userRequest and returns the final result
// text.
func (a *Agent) Run(ctx context.Context, userRequest string) (string, error) {
	state := &State{
		CleanRun:    a.cfg.ClearSandbox,
		SandboxDir:  a.cfg.SandboxDir,
		UserRequest: userRequest,
	}
	if err := a.run(ctx, state); err != nil {
		return "", err
	}
	if state.FinalResult == nil {
		return "", fmt.Errorf("run finished without a result")
	}
	if state.FinalResult.Failed() {
		return state.FinalResult.FinalResult, fmt.Errorf("tool '%v' failed: %v",
			state.FinalResult.Error.ToolName, state.FinalResult.Error.ErrorMessage)
	}
	return state.FinalResult.FinalResult, nil
}

func (a *Agent) systemChat(systemPrompt string, userMsgs ...string) models.Chat {
	chat := models.Chat{
		Created: time.Now(),
		ID:      a.session.ID,
		Messages: []models.Message{
			{Role: "system", Content: systemPrompt},
		},
	}
	for _, msg := range userMsgs {
		chat.Messages = append(chat.Messages, models.Message{Role: "user", Content: msg})
	}
	return chat
}

func userMessage(content string) models.Message {
	return models.Message{Role: "user", Content: content}
}

// Monitor returns a sandbox monitor bound to this agent's loader, or nil
// before sandbox setup.
func (a *Agent) Monitor() *sandbox.Monitor {
	if a.loader == nil {
		return nil
	}
	return sandbox.NewMonitor(a.loader)
}

func (a *Agent) registry() sandbox.ToolRegistry {
	return tools.Registry
}
