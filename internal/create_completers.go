package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/paulrobello/auto-tool-agent/internal/pipeline"
	"github.com/paulrobello/auto-tool-agent/internal/vendors/anthropic"
	"github.com/paulrobello/auto-tool-agent/internal/vendors/openai"
)

// CreateCompleter picks a vendor from the provider, falling back to routing
// by model name, and returns it Setup and ready to complete.
func CreateCompleter(conf AgentConfig) (pipeline.ToolCompleter, error) {
	provider := strings.ToLower(conf.Provider)
	if provider == "" {
		switch {
		case strings.HasPrefix(conf.Model, "claude"):
			provider = "anthropic"
		case strings.HasPrefix(conf.Model, "gpt"), strings.HasPrefix(conf.Model, "o1"), strings.HasPrefix(conf.Model, "o3"):
			provider = "openai"
		default:
			return nil, fmt.Errorf("failed to route model '%v' to a provider, set one explicitly", conf.Model)
		}
	}

	var completer pipeline.ToolCompleter
	switch provider {
	case "anthropic":
		claude := anthropic.ClaudeDefault
		if conf.Model != "" {
			claude.Model = conf.Model
		}
		completer = &claude
	case "openai":
		gpt := openai.GptDefault
		if conf.Model != "" {
			gpt.Model = conf.Model
		}
		completer = &gpt
	case "ollama":
		gpt := openai.GptDefault
		gpt.Model = conf.Model
		if gpt.Model == "" {
			gpt.Model = "llama3.2"
		}
		// Ollama exposes an openai compatible endpoint and ignores keys
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		gpt.URL = strings.TrimSuffix(host, "/") + "/v1/chat/completions"
		if os.Getenv("OPENAI_API_KEY") == "" {
			os.Setenv("OPENAI_API_KEY", "ollama")
		}
		completer = &gpt
	default:
		return nil, fmt.Errorf("unknown provider: '%v'", conf.Provider)
	}

	if err := completer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup provider '%v': %w", provider, err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("using provider: %v, model: %v\n", provider, conf.Model))
	}
	return completer, nil
}
