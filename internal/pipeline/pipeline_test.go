package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
	"github.com/paulrobello/auto-tool-agent/internal/vendors/mock"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DataDir:       dir,
		SandboxDir:    filepath.Join(dir, "sandbox"),
		OutputFormat:  "markdown",
		OutputFile:    filepath.Join(dir, "final_result.md"),
		MaxIterations: 25,
	}
}

func TestRun(t *testing.T) {
	tools.Registry.Reset()
	t.Cleanup(tools.Registry.Reset)

	plannerReply := `{
		"steps": ["build the marker tool", "run it"],
		"explanation": "Build a tool which emits a marker, then run it.",
		"needed_tools": [
			{"name": "emit_marker", "description": "Emits a marker value.", "existing": false, "needs_review": false}
		]
	}`
	coderReply := `{
		"name": "emit_marker",
		"description": "Emits a marker value.",
		"code": "def run(args):\n    return {\"error\": None, \"result\": \"marker\"}\n",
		"dependencies": [],
		"input_schema": {"type": "object", "required": [], "properties": {}}
	}`
	reviewReply := `{"tool_valid": true, "tool_updated": false, "tool_issues": "", "updated_tool_code": ""}`
	resultsReply := `{"final_result": "the marker is 42"}`
	formattedReply := "## Result\n\nthe marker is 42"

	m := &mock.Mock{Replies: []models.Message{
		mock.TextReply(plannerReply),
		mock.TextReply(coderReply),
		mock.TextReply(reviewReply),
		mock.TextReply(resultsReply),
		mock.TextReply(formattedReply),
	}}
	cfg := testConfig(t)
	a, err := New(cfg, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := a.Run(context.Background(), "what is the marker?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != formattedReply {
		t.Fatalf("expected formatted result, got: %v", got)
	}

	t.Run("it should persist the built tool", func(t *testing.T) {
		toolPath := filepath.Join(cfg.SandboxDir, sandbox.SrcDir, "emit_marker.py")
		code, err := os.ReadFile(toolPath)
		if err != nil {
			t.Fatalf("expected tool saved: %v", err)
		}
		if !strings.Contains(string(code), "def run") {
			t.Fatalf("unexpected tool code: %v", string(code))
		}
	})

	t.Run("it should register the tool spec on the vendor", func(t *testing.T) {
		specs := m.RegisteredTools()
		if len(specs) != 1 || specs[0].Name != "emit_marker" {
			t.Fatalf("expected emit_marker registered, got: %+v", specs)
		}
	})

	t.Run("it should write the output file", func(t *testing.T) {
		data, err := os.ReadFile(cfg.OutputFile)
		if err != nil {
			t.Fatalf("expected output file: %v", err)
		}
		if string(data) != formattedReply {
			t.Fatalf("unexpected output file content: %v", string(data))
		}
	})

	t.Run("it should persist the state file", func(t *testing.T) {
		matches, err := filepath.Glob(filepath.Join(cfg.DataDir, "state-*.json"))
		if err != nil || len(matches) != 1 {
			t.Fatalf("expected one state file, got: %v, err: %v", matches, err)
		}
	})
}

func TestRunIterationBudget(t *testing.T) {
	tools.Registry.Reset()
	t.Cleanup(tools.Registry.Reset)
	cfg := testConfig(t)
	cfg.MaxIterations = 1
	a, err := New(cfg, &mock.Mock{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = a.Run(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "iteration budget") {
		t.Fatalf("expected budget error, got: %v", err)
	}
}

func TestSaveStateDefaultOutputFile(t *testing.T) {
	tools.Registry.Reset()
	t.Cleanup(tools.Registry.Reset)
	cfg := testConfig(t)
	cfg.OutputFile = ""
	a, err := New(cfg, &mock.Mock{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := &State{FinalResult: &FinalResult{FinalResult: "# hi"}}
	next, err := a.saveState(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != nodeEnd {
		t.Fatalf("expected run end, got %v", next)
	}
	data, err := os.ReadFile(filepath.Join(cfg.DataDir, "final_result.md"))
	if err != nil {
		t.Fatalf("expected default output file in the data dir: %v", err)
	}
	if string(data) != "# hi" {
		t.Fatalf("unexpected output file content: %v", string(data))
	}
}

func TestIsToolNeeded(t *testing.T) {
	a := &Agent{}
	cases := []struct {
		name  string
		tools []sandbox.ToolDescription
		want  string
	}{
		{"no tools", nil, nodeGetResultsPreCheck},
		{"new tool", []sandbox.ToolDescription{{Name: "a", Existing: false}}, nodeBuildTool},
		{"review needed", []sandbox.ToolDescription{{Name: "a", Existing: true, NeedsReview: true}}, nodeReviewTools},
		{"all good", []sandbox.ToolDescription{{Name: "a", Existing: true}}, nodeGetResultsPreCheck},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := a.isToolNeeded(&State{NeededTools: tc.tools})
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCheckResults(t *testing.T) {
	tools.Registry.Reset()
	t.Cleanup(tools.Registry.Reset)
	a := &Agent{}

	t.Run("it should continue on success", func(t *testing.T) {
		s := &State{FinalResult: &FinalResult{FinalResult: "done"}}
		if got := a.checkResults(context.Background(), s); got != nodeFormatOutput {
			t.Fatalf("expected format_output, got %v", got)
		}
	})

	t.Run("it should replan on tool failure", func(t *testing.T) {
		s := &State{
			NeededTools: []sandbox.ToolDescription{{Name: "get_data", Existing: true}},
			FinalResult: &FinalResult{
				FinalResult: "",
				Error:       &FinalResultError{ToolName: "get_data", ErrorMessage: "timeout while listing buckets"},
			},
		}
		if got := a.checkResults(context.Background(), s); got != nodePlanProject {
			t.Fatalf("expected plan_project, got %v", got)
		}
		if !s.NeededTools[0].NeedsReview {
			t.Fatal("expected failing tool marked for review")
		}
		if !strings.Contains(s.UserFeedback, "timeout while listing buckets") {
			t.Fatalf("expected feedback, got: %v", s.UserFeedback)
		}
		if s.FinalResult != nil {
			t.Fatal("expected result cleared before replanning")
		}
	})

	t.Run("it should end the run on credential errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ctx = context.WithValue(ctx, utils.ContextCancelKey, context.CancelFunc(cancel))
		s := &State{
			NeededTools: []sandbox.ToolDescription{{Name: "get_data", Existing: true}},
			FinalResult: &FinalResult{
				Error: &FinalResultError{ToolName: "get_data", ErrorMessage: "Unable to locate credentials"},
			},
		}
		if got := a.checkResults(ctx, s); got != nodeEnd {
			t.Fatalf("expected run end, got %v", got)
		}
		if s.FinalResult == nil {
			t.Fatal("expected failure kept so the run errors out")
		}
		if ctx.Err() == nil {
			t.Fatal("expected root context cancelled")
		}
	})
}

func TestIsFatalToolError(t *testing.T) {
	cases := []struct {
		errMsg string
		want   bool
	}{
		{"Unable to locate credentials", true},
		{"The config profile (prod) could not be found", true},
		{"401 Unauthorized", true},
		{"AccessDenied: forbidden", true},
		{"invalid api key", true},
		{"timeout while listing buckets", false},
		{"KeyError: 'region'", false},
	}
	for _, tc := range cases {
		if got := isFatalToolError(tc.errMsg); got != tc.want {
			t.Fatalf("isFatalToolError(%q): expected %v, got %v", tc.errMsg, tc.want, got)
		}
	}
}
