package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/paulrobello/auto-tool-agent/internal"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

const usageFormat = `auto-tool-agent - an agent which writes its own tools

Prerequisites:
  - Set the ANTHROPIC_API_KEY environment variable to your Anthropic API key
  - Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - Set the OLLAMA_HOST environment variable to use a local Ollama server (default http://localhost:11434)
  - Install python3, used to run the generated tool scripts
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output
  - Variables may also be placed in <data-dir>/.env

Usage: auto-tool-agent [flags] <command>

Flags:
  -f, -format string           Set the output format: markdown, json, csv, text or none. (default '%v')
  -o, -output string           Set the file to write the final result to. (default 'final_result.<ext>' in the data dir)
  -s, -system-prompt string    Set the results system prompt: a template name, a yaml file or a plain text file. (default the built in data analyst prompt)
  -m, -max-iterations int      Set the pipeline iteration budget before the run is aborted. (default %v)
  -P, -provider string         Set the LLM provider: anthropic, openai or ollama. (default is found in agentConfig.json)
  -M, -model string            Set the model to use. (default is found in agentConfig.json)
  -d, -data-dir string         Set the directory for config, prompts and state files. (default '<UserConfigDir>/auto-tool-agent', or AUTO_TOOL_AGENT_DATA_DIR)
  -sandbox-dir string          Set the directory holding the tool sandbox. (default '<data-dir>/sandbox')
  -clear-sandbox bool          Set to true to wipe the sandbox before the run. (default %v)
  -u, -user-prompt string      Set a file to read the query from, or '-' for stdin. (default read from args)
  -review-tools bool           Set to true to force a review of every tool, also existing ones. (default %v)

Commands:
  h|help                       Display this help message
  q|query <text>               Run the agent with the given query
  t|tools                      List the tools currently in the sandbox
  t|tools <tool-name>          Print the full specification of one tool
  t|tools <pattern>            List tools matching a '*' wildcard pattern, e.g. 'list_*'
  p|prompts                    List the available system prompt templates
  p|prompts <name>             Print one system prompt template
  v|version                    Print the version

Examples:
  - auto-tool-agent query "List the top 5 largest files in /var/log"
  - auto-tool-agent -f json q "How many weekdays are there between 2024-03-01 and 2024-07-14?"
  - auto-tool-agent -P ollama -M qwen2.5-coder query "Sum the 'amount' column of data.csv"
  - cat query.txt | auto-tool-agent -u - query
  - auto-tool-agent -clear-sandbox -review-tools query "Fetch the readme of github.com/golang/go and summarize it"
  - auto-tool-agent tools
  - auto-tool-agent prompts aws
`

func main() {
	ancli.SetupSlog()
	if misc.Truthy(os.Getenv("DEBUG_CPU")) {
		f, err := os.Create("cpu_profile.prof")
		ok := true
		if err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to create profiler file: %v", err))
		}
		if ok {
			defer f.Close()
			// Start the CPU profile
			err = pprof.StartCPUProfile(f)
			if err != nil {
				ancli.PrintErr(fmt.Sprintf("failed to start profiler : %v", err))
			}
			defer pprof.StopCPUProfile()
		}
	}

	usage := fmt.Sprintf(usageFormat, "markdown", 25, false, false)
	ctx, cancel := context.WithCancel(context.Background())
	// Build in cancel into the context to allow it to be called downstream,
	// needed to cleanly stop mid pipeline run
	ctx = context.WithValue(ctx, utils.ContextCancelKey, cancel)
	command, err := internal.Setup(ctx, usage)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			os.Exit(0)
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		os.Exit(1)
	}
	go func() { shutdown.Monitor(cancel) }()
	err = command.Run(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			os.Exit(0)
		} else {
			ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
			os.Exit(1)
		}
	}
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}
