package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

type EnvVarsTool models.Specification

// GetEnvVars lists environment variable names, optionally filtered by
// prefix. Values are only returned when explicitly asked for a single
// variable, which keeps credentials out of the chat transcript by default.
var GetEnvVars = EnvVarsTool{
	Name:        "get_env_vars",
	Description: "List environment variable names visible to generated tools, optionally filtered by prefix. Pass 'name' to read one variable's value.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: make([]string, 0),
		Properties: map[string]models.ParameterObject{
			"prefix": {
				Type:        "string",
				Description: "Only list variables whose name starts with this prefix, e.g. 'AWS_'.",
			},
			"name": {
				Type:        "string",
				Description: "Return the value of exactly this variable instead of listing names.",
			},
		},
	},
}

func (e EnvVarsTool) Call(input models.Input) (string, error) {
	if name, ok := input["name"].(string); ok && name != "" {
		val, exists := os.LookupEnv(name)
		if !exists {
			return "", fmt.Errorf("environment variable '%v' not set", name)
		}
		return val, nil
	}
	prefix, _ := input["prefix"].(string)
	var names []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

func (e EnvVarsTool) Specification() models.Specification {
	return models.Specification(GetEnvVars)
}
