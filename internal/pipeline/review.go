package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/llm"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
)

func (a *Agent) reviewTools(ctx context.Context, s *State) (string, error) {
	ancli.Okf("reviewing tools...\n")
	if s.Plan == nil {
		return "", fmt.Errorf("aborted review due to empty plan")
	}
	badTools := a.registry().Bad()
	for i := range s.NeededTools {
		tool := &s.NeededTools[i]
		if !tool.NeedsReview {
			continue
		}
		ancli.Okf("reviewing tool: %v\n", tool.Name)
		tool.NeedsReview = false

		userMsg := tool.Code
		if loadErr, isBad := badTools[tool.Name]; isBad {
			userMsg += fmt.Sprintf("\n%v\nThe tool had the following exception:\n%v",
				strings.Repeat("=", 50), loadErr)
		}
		if s.UserFeedback != "" {
			userMsg += fmt.Sprintf("\nThe user would also like the following changes or issues addressed:\n%v",
				s.UserFeedback)
		}

		chat := a.systemChat(
			prompts.Reviewer(s.Plan.Explanation)+"\n"+a.reviewExtractor.SchemaInstruction(),
			userMsg,
		)
		reply, err := a.reviewExtractor.Extract(ctx, a.completer, chat)
		if err != nil {
			return "", fmt.Errorf("review failed for tool '%v': %w", tool.Name, err)
		}
		if reply.ToolUpdated && strings.TrimSpace(reply.UpdatedToolCode) != "" {
			ancli.PrintWarn(fmt.Sprintf("tool review did not pass: %v\n", tool.Name))
			ancli.Noticef("%v\n", reply.ToolIssues)
			tool.Code = llm.StripFences(reply.UpdatedToolCode)
			tool.NeedsReview = true
			if err := a.evaluateDependencies(ctx, tool); err != nil {
				return "", err
			}
			if err := tool.Save(s.SandboxDir); err != nil {
				return "", err
			}
			if err := a.sb.CommitTool(a.session.ID,
				*tool, fmt.Sprintf("Revised Tool: %v\n%v", tool.Name, reply.ToolIssues)); err != nil {
				return "", err
			}
			ancli.Noticef("%v\n", a.sb.Diff(tool.ToolPath()))
			ancli.Okf("tool corrected: %v\n", tool.Name)
		} else {
			ancli.Okf("tool review passed: %v\n", tool.Name)
		}
	}
	s.UserFeedback = ""
	if err := a.syncDepsIfNeeded(s); err != nil {
		return "", err
	}
	if err := a.saveStateFile(s); err != nil {
		return "", err
	}
	return nodeGetResultsPreCheck, nil
}
