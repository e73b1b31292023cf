package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/llm"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// FormatExtension maps output formats to the default result file extension.
var FormatExtension = map[string]string{
	"none":     ".txt",
	"text":     ".txt",
	"markdown": ".md",
	"csv":      ".csv",
	"json":     ".json",
}

func (a *Agent) formatOutput(ctx context.Context, s *State) (string, error) {
	if s.FinalResult == nil || s.FinalResult.FinalResult == "" {
		return nodeSaveState, nil
	}
	systemPrompt := prompts.OutputFormat(a.cfg.OutputFormat)
	if systemPrompt == "" {
		return nodeSaveState, nil
	}
	ancli.Okf("formatting output...\n")
	chat := a.systemChat(
		systemPrompt,
		"Original User Request: "+s.UserRequest,
		"Data: \n"+s.FinalResult.FinalResult,
	)
	msg, err := a.completer.Complete(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("output formatting failed: %w", err)
	}
	s.FinalResult.FinalResult = llm.StripFences(msg.Content)
	return nodeSaveState, nil
}

func (a *Agent) saveState(ctx context.Context, s *State) (string, error) {
	if err := a.saveStateFile(s); err != nil {
		return "", err
	}
	if s.FinalResult == nil || s.FinalResult.FinalResult == "" || a.cfg.Quiet {
		return nodeEnd, nil
	}
	outputFile := a.cfg.OutputFile
	if outputFile == "" {
		ext, ok := FormatExtension[a.cfg.OutputFormat]
		if !ok {
			ext = ".txt"
		}
		outputFile = filepath.Join(a.cfg.DataDir, "final_result"+ext)
	}
	if err := utils.WriteText(outputFile, s.FinalResult.FinalResult); err != nil {
		return "", err
	}
	ancli.Okf("final result written to: %v\n", outputFile)

	switch a.cfg.OutputFormat {
	case "csv":
		table, err := utils.RenderCSVTable(s.FinalResult.FinalResult)
		if err != nil {
			fmt.Println(s.FinalResult.FinalResult)
		} else {
			fmt.Println(table)
		}
	default:
		fmt.Println(s.FinalResult.FinalResult)
	}
	return nodeEnd, nil
}

// saveStateFile persists the whole state for inspection and reuse, named by
// session.
func (a *Agent) saveStateFile(s *State) error {
	if a.cfg.DataDir == "" {
		return nil
	}
	path := filepath.Join(a.cfg.DataDir, fmt.Sprintf("state-%v.json", a.session.ID))
	if err := utils.WriteFile(path, s); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
