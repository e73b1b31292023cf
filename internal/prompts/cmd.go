package prompts

import (
	"context"
	"fmt"

	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// SubCmd implements the 'prompts' command: list the template library, or
// print the full prompt of one template.
func SubCmd(ctx context.Context, promptsDir string, args []string) error {
	templates, err := List(promptsDir)
	if err != nil {
		return fmt.Errorf("failed to list prompt templates: %w", err)
	}
	if len(args) > 1 {
		wanted := args[1]
		for _, tmpl := range templates {
			if tmpl.Name == wanted {
				fmt.Printf("%v\n", tmpl.Prompt)
				return utils.ErrUserInitiatedExit
			}
		}
		return fmt.Errorf("prompt template '%v' not found", wanted)
	}
	fmt.Printf("Prompt templates in %v:\n", promptsDir)
	for _, tmpl := range templates {
		fmt.Printf("- %v: %v\n", tmpl.Name, tmpl.Description)
	}
	fmt.Println("\nRun 'auto-tool-agent prompts <name>' to print a template, or pass '-system-prompt <name>' to a query.")
	return utils.ErrUserInitiatedExit
}
