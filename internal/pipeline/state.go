// Package pipeline drives the agent graph: sandbox setup, planning, tool
// building, review, result gathering, output formatting and state
// persistence, with conditional routing between the phases.
package pipeline

import (
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
)

// State is threaded through every node of the graph.
type State struct {
	CallStack    []string                  `json:"call_stack"`
	CleanRun     bool                      `json:"clean_run"`
	SandboxDir   string                    `json:"sandbox_dir"`
	Dependencies []string                  `json:"dependencies"`
	UserRequest  string                    `json:"user_request"`
	NeededTools  []sandbox.ToolDescription `json:"needed_tools"`
	Plan         *PlanResponse             `json:"plan"`
	FinalResult  *FinalResult              `json:"final_result"`
	UserFeedback string                    `json:"user_feedback"`
}

func (s *State) pushCall(node string) {
	s.CallStack = append(s.CallStack, node)
}

// PlanResponse is the plan part of the planner's reply. The needed tools it
// named live in State.NeededTools.
type PlanResponse struct {
	Steps       []string `json:"steps"`
	Explanation string   `json:"explanation"`
}

// CodeReviewResponse is the reviewer's structured reply.
type CodeReviewResponse struct {
	ToolValid       bool   `json:"tool_valid"`
	ToolUpdated     bool   `json:"tool_updated"`
	ToolIssues      string `json:"tool_issues"`
	UpdatedToolCode string `json:"updated_tool_code"`
}

// DependenciesResponse is the dependency evaluator's structured reply.
type DependenciesResponse struct {
	Dependencies []string `json:"dependencies"`
}

// FinalResultError identifies the tool behind a failed run so the planner
// can schedule its repair.
type FinalResultError struct {
	ToolName     string `json:"tool_name"`
	ErrorMessage string `json:"error_message"`
}

// FinalResult is the reply shape of the results phase.
type FinalResult struct {
	FinalResult string            `json:"final_result"`
	Error       *FinalResultError `json:"error,omitempty"`
}

// Failed reports whether the run produced a tool error worth replanning for.
func (f *FinalResult) Failed() bool {
	return f != nil && f.Error != nil && f.Error.ToolName != "" && f.Error.ErrorMessage != ""
}
