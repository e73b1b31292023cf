package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Node names. Conditional nodes return the name of the next node, the end
// node returns nodeEnd.
const (
	nodeSetupSandbox       = "setup_sandbox"
	nodePlanProject        = "plan_project"
	nodeBuildTool          = "build_tool"
	nodeReviewTools        = "review_tools"
	nodeGetResultsPreCheck = "get_results_pre_check"
	nodeGetResults         = "get_results"
	nodeFormatOutput       = "format_output"
	nodeSaveState          = "save_state"
	nodeEnd                = ""
)

// nodeFunc runs one phase and names the next one.
type nodeFunc func(ctx context.Context, s *State) (string, error)

func (a *Agent) nodes() map[string]nodeFunc {
	return map[string]nodeFunc{
		nodeSetupSandbox:       a.setupSandbox,
		nodePlanProject:        a.planProject,
		nodeBuildTool:          a.buildTool,
		nodeReviewTools:        a.reviewTools,
		nodeGetResultsPreCheck: a.getResultsPreCheck,
		nodeGetResults:         a.getResults,
		nodeFormatOutput:       a.formatOutput,
		nodeSaveState:          a.saveState,
	}
}

// run walks the graph from setup until the end node, bounded by the
// iteration budget so replanning loops cannot spin forever.
func (a *Agent) run(ctx context.Context, s *State) error {
	nodes := a.nodes()
	current := nodeSetupSandbox
	iterations := 0
	for current != nodeEnd {
		if err := ctx.Err(); err != nil {
			return err
		}
		iterations++
		if iterations > a.cfg.MaxIterations {
			return fmt.Errorf("aborting, iteration budget of %v exceeded at node '%v'", a.cfg.MaxIterations, current)
		}
		node, exists := nodes[current]
		if !exists {
			return fmt.Errorf("unknown node: '%v'", current)
		}
		slog.Debug("entering node", "node", current, "iteration", iterations)
		s.pushCall(current)
		next, err := node(ctx, s)
		if err != nil {
			return fmt.Errorf("node '%v' failed: %w", current, err)
		}
		current = next
	}
	return nil
}
