package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// SubCmd implements the 'tools' command: list all registered tools, filter
// them with a wildcard pattern, or print the full specification of one.
func SubCmd(ctx context.Context, args []string) error {
	if len(args) > 1 {
		arg := args[1]
		if strings.Contains(arg, "*") {
			matches := Registry.WildcardGet(arg)
			if len(matches) == 0 {
				return fmt.Errorf("no tools match '%s'", arg)
			}
			sort.Slice(matches, func(i, j int) bool {
				return matches[i].Specification().Name < matches[j].Specification().Name
			})
			fmt.Printf("Tools matching '%s':\n", arg)
			for _, tool := range matches {
				spec := tool.Specification()
				fmt.Printf("- %s: %s\n", spec.Name, spec.Description)
			}
			return utils.ErrUserInitiatedExit
		}
		tool, exists := Registry.Get(arg)
		if !exists {
			return fmt.Errorf("tool '%s' not found", arg)
		}
		spec := tool.Specification()
		jsonSpec, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tool specification: %w", err)
		}
		fmt.Printf("%s\n", string(jsonSpec))
		return utils.ErrUserInitiatedExit
	}

	all := Registry.All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("Available Tools:\n")
	for _, name := range names {
		fmt.Printf("- %s: %s\n", name, all[name].Specification().Description)
	}
	bad := Registry.Bad()
	if len(bad) > 0 {
		fmt.Printf("\nTools with load errors:\n")
		for name, loadErr := range bad {
			fmt.Printf("- %s: %s\n", name, loadErr)
		}
	}
	fmt.Println("\nRun 'auto-tool-agent tools <tool-name>' for more details.")
	return utils.ErrUserInitiatedExit
}
