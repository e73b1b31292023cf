package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/llm"
	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
)

// CoderResponse is the shape the coder model replies with.
type CoderResponse struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Code         string           `json:"code"`
	Dependencies []string         `json:"dependencies"`
	InputSchema  coderInputSchema `json:"input_schema"`
}

type coderInputSchema struct {
	Type       string                `json:"type"`
	Required   []string              `json:"required"`
	Properties map[string]coderParam `json:"properties"`
}

type coderParam struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (c coderInputSchema) toModels() *models.InputSchema {
	out := &models.InputSchema{
		Type:     c.Type,
		Required: c.Required,
	}
	if len(c.Properties) > 0 {
		out.Properties = make(map[string]models.ParameterObject, len(c.Properties))
		for name, param := range c.Properties {
			out.Properties[name] = models.ParameterObject{
				Type:        param.Type,
				Description: param.Description,
			}
		}
	}
	out.Patch()
	return out
}

func (a *Agent) buildTool(ctx context.Context, s *State) (string, error) {
	ancli.Okf("building tools...\n")
	if s.Plan == nil {
		return "", fmt.Errorf("aborted tool build due to empty plan")
	}
	for i := range s.NeededTools {
		tool := &s.NeededTools[i]
		if tool.Existing {
			continue
		}
		if err := a.codeTool(ctx, tool, s.Plan); err != nil {
			return "", err
		}
		tool.NeedsReview = true
		tool.Existing = true
		if err := tool.Save(s.SandboxDir); err != nil {
			return "", err
		}
		if err := a.sb.CommitTool(a.session.ID, *tool, "New Tool: "+tool.Name); err != nil {
			return "", err
		}
		ancli.Okf("tool created: %v\n", tool.Name)
	}
	if err := a.syncDepsIfNeeded(s); err != nil {
		return "", err
	}
	return nodeReviewTools, nil
}

func (a *Agent) codeTool(ctx context.Context, tool *sandbox.ToolDescription, plan *PlanResponse) error {
	ancli.Okf("coding tool: %v\n", tool.Name)
	chat := a.systemChat(
		prompts.Coder(plan.Explanation)+"\n"+a.coderExtractor.SchemaInstruction(),
		fmt.Sprintf("Tool_Name: %v\nTool_Description: %v\n", tool.Name, tool.Description),
	)
	reply, err := a.coderExtractor.Extract(ctx, a.completer, chat)
	if err != nil {
		return fmt.Errorf("coder failed for tool '%v': %w", tool.Name, err)
	}
	tool.Code = llm.StripFences(reply.Code)
	tool.Dependencies = reply.Dependencies
	tool.InputSchema = reply.InputSchema.toModels()
	if strings.TrimSpace(tool.Code) == "" {
		return fmt.Errorf("coder produced no code for tool '%v'", tool.Name)
	}
	if len(tool.Dependencies) == 0 {
		if err := a.evaluateDependencies(ctx, tool); err != nil {
			return err
		}
	}
	return nil
}

// evaluateDependencies asks the model for the packages behind the tool's
// import lines.
func (a *Agent) evaluateDependencies(ctx context.Context, tool *sandbox.ToolDescription) error {
	var imports []string
	for _, line := range strings.Split(tool.Code, "\n") {
		if strings.Contains(line, "import") {
			imports = append(imports, line)
		}
	}
	if len(imports) == 0 {
		return nil
	}
	chat := a.systemChat(
		prompts.DependencyEvaluator+"\n"+a.depsExtractor.SchemaInstruction(),
		strings.Join(imports, "\n"),
	)
	reply, err := a.depsExtractor.Extract(ctx, a.completer, chat)
	if err != nil {
		return fmt.Errorf("dependency evaluation failed for tool '%v': %w", tool.Name, err)
	}
	sort.Strings(reply.Dependencies)
	tool.Dependencies = reply.Dependencies
	return nil
}

// syncDepsIfNeeded rewrites requirements.txt when the union of tool deps
// changed.
func (a *Agent) syncDepsIfNeeded(s *State) error {
	deps := make([]string, 0, len(s.Dependencies))
	deps = append(deps, s.Dependencies...)
	for _, tool := range s.NeededTools {
		deps = append(deps, tool.Dependencies...)
	}
	changed, err := a.sb.SyncRequirements(deps)
	if err != nil {
		return err
	}
	if changed {
		s.pushCall("sync_deps")
		s.Dependencies = a.sb.Requirements()
	}
	return nil
}
