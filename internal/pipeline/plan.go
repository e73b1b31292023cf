package pipeline

import (
	"context"
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
)

// planReply is the shape the planner model replies with.
type planReply struct {
	Steps       []string      `json:"steps"`
	Explanation string        `json:"explanation"`
	NeededTools []plannedTool `json:"needed_tools"`
}

type plannedTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Existing    bool   `json:"existing"`
	NeedsReview bool   `json:"needs_review"`
}

func (a *Agent) setupSandbox(ctx context.Context, s *State) (string, error) {
	sb, err := sandbox.Setup(s.SandboxDir, s.CleanRun)
	if err != nil {
		return "", err
	}
	a.sb = sb
	s.SandboxDir = sb.Dir
	// Only the first run of an agent may wipe the sandbox
	a.cfg.ClearSandbox = false
	a.runner = sandbox.NewRunner(sb.Dir)
	a.loader = sandbox.NewLoader(sb, a.runner, a.registry())
	tools.Init(sb.Dir)
	if _, err := a.loader.LoadAll(); err != nil {
		return "", err
	}
	s.Dependencies = sb.Requirements()
	if a.cfg.WatchSandbox {
		mon := sandbox.NewMonitor(a.loader)
		go func() {
			if err := mon.Start(ctx); err != nil {
				ancli.PrintWarn(fmt.Sprintf("sandbox monitor stopped: %v\n", err))
			}
		}()
	}
	return nodePlanProject, nil
}

func (a *Agent) planProject(ctx context.Context, s *State) (string, error) {
	ancli.Okf("planning project...\n")
	if _, err := a.loader.LoadAll(); err != nil {
		return "", err
	}
	available := sandbox.Descriptions(a.registry())
	chat := a.systemChat(
		prompts.Planner+"\n"+a.planExtractor.SchemaInstruction(),
		s.UserRequest,
		fmt.Sprintf("Available tools:\n%v", available),
	)
	if s.UserFeedback != "" {
		chat.Messages = append(chat.Messages, userMessage(s.UserFeedback))
		s.UserFeedback = ""
	}
	reply, err := a.planExtractor.Extract(ctx, a.completer, chat)
	if err != nil {
		return "", fmt.Errorf("planner failed: %w", err)
	}
	s.Plan = &PlanResponse{Steps: reply.Steps, Explanation: reply.Explanation}

	badTools := a.registry().Bad()
	s.NeededTools = s.NeededTools[:0]
	for _, planned := range reply.NeededTools {
		tool := sandbox.ToolDescription{
			Name:        planned.Name,
			Description: planned.Description,
			Existing:    planned.Existing,
			NeedsReview: planned.NeedsReview,
		}
		if tool.Existing {
			if loaded, loadErr := sandbox.Load(s.SandboxDir, tool.Name); loadErr == nil {
				loaded.Existing = true
				loaded.NeedsReview = tool.NeedsReview
				tool = loaded
			} else {
				tool.Existing = false
			}
		}
		if _, isBad := badTools[tool.Name]; isBad {
			tool.NeedsReview = true
		}
		if a.cfg.ForceReview && !tool.NeedsReview {
			ancli.Okf("forcing review of tool: %v\n", tool.Name)
			tool.NeedsReview = true
		}
		s.NeededTools = append(s.NeededTools, tool)
	}

	for i, step := range s.Plan.Steps {
		ancli.Noticef("%v - %v\n", i, step)
	}
	for i, tool := range s.NeededTools {
		ancli.Noticef("%v - %v - existing: %v - needs review: %v\n",
			i, tool.Name, tool.Existing, tool.NeedsReview)
	}
	return a.isToolNeeded(s), nil
}

// isToolNeeded routes from the plan to building, reviewing, or straight to
// results.
func (a *Agent) isToolNeeded(s *State) string {
	for _, tool := range s.NeededTools {
		if !tool.Existing {
			ancli.Okf("new tool needed: %v, building...\n", tool.Name)
			return nodeBuildTool
		}
		if tool.NeedsReview {
			ancli.Okf("tool review needed: %v, reviewing...\n", tool.Name)
			return nodeReviewTools
		}
	}
	return nodeGetResultsPreCheck
}
