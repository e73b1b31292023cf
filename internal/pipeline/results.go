package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/llm"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

func (a *Agent) getResultsPreCheck(ctx context.Context, s *State) (string, error) {
	names := make([]string, 0, len(s.NeededTools))
	for _, tool := range s.NeededTools {
		names = append(names, tool.Name)
	}
	ancli.Okf("ensuring needed tools are available: %v\n", names)
	if err := a.syncDepsIfNeeded(s); err != nil {
		return "", err
	}
	if _, err := a.loader.LoadAll(); err != nil {
		return "", err
	}
	return a.hasNeededTools(s), nil
}

// hasNeededTools re-routes to review when a needed tool still needs it, and
// back to the planner when one is missing entirely.
func (a *Agent) hasNeededTools(s *State) string {
	for _, tool := range s.NeededTools {
		if tool.NeedsReview {
			ancli.Okf("tool needs review: %v, reviewing...\n", tool.Name)
			return nodeReviewTools
		}
	}
	for _, tool := range s.NeededTools {
		if _, exists := a.registry().Get(tool.Name); !exists {
			ancli.PrintWarn(fmt.Sprintf("missing tool: %v, returning to planner...\n", tool.Name))
			return nodePlanProject
		}
	}
	return nodeGetResults
}

func (a *Agent) getResults(ctx context.Context, s *State) (string, error) {
	ancli.Okf("getting results...\n")
	if err := a.sb.CommitLeftovers(a.session.ID, "Request: "+s.UserRequest); err != nil {
		return "", err
	}
	for _, tool := range s.NeededTools {
		if _, exists := a.registry().Get(tool.Name); !exists {
			return "", fmt.Errorf("missing tool: %v", tool.Name)
		}
		a.completer.RegisterTool(tools.ToolFromName(tool.Name))
	}

	chat := a.systemChat(a.cfg.SystemPrompt, s.UserRequest)
	msg, _, err := llm.ToolLoop(ctx, a.completer, chat, tools.Invoke, a.cfg.ToolCallBudget)
	if err != nil {
		return "", fmt.Errorf("results phase failed: %w", err)
	}
	final, parseErr := a.finalExtractor.Parse(msg.Content)
	if parseErr != nil {
		// Raw text still beats dropping the answer
		final = FinalResult{FinalResult: llm.StripFences(msg.Content)}
	}
	s.FinalResult = &final
	return a.checkResults(ctx, s), nil
}

// fatalToolErrorMarkers are failures repair cannot help with: the model
// rewriting a tool will not fix the caller's credentials.
var fatalToolErrorMarkers = []string{
	"credential",
	"profile",
	"unauthorized",
	"forbidden",
	"api key",
}

func isFatalToolError(errMsg string) bool {
	lowered := strings.ToLower(errMsg)
	for _, marker := range fatalToolErrorMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// checkResults routes a failed run back to the planner with feedback, after
// marking the failing tool for review. Credential and authorization errors
// end the run instead, cancelling the root context.
func (a *Agent) checkResults(ctx context.Context, s *State) string {
	if !s.FinalResult.Failed() {
		return nodeFormatOutput
	}
	failure := s.FinalResult.Error
	if isFatalToolError(failure.ErrorMessage) {
		ancli.PrintErr(fmt.Sprintf("tool '%v' hit a fatal error: %v\n",
			failure.ToolName, failure.ErrorMessage))
		if cancel, ok := utils.CancelFromContext(ctx); ok {
			cancel()
		}
		return nodeEnd
	}
	ancli.PrintWarn(fmt.Sprintf("tool '%v' errored: %v, replanning...\n",
		failure.ToolName, failure.ErrorMessage))
	for i := range s.NeededTools {
		if s.NeededTools[i].Name == failure.ToolName {
			s.NeededTools[i].NeedsReview = true
		}
	}
	a.registry().SetBad(failure.ToolName, failure.ErrorMessage)
	s.UserFeedback = fmt.Sprintf(
		"The previous attempt failed. Tool '%v' returned: %v. Plan around or repair this tool.",
		failure.ToolName, failure.ErrorMessage)
	s.FinalResult = nil
	return nodePlanProject
}
