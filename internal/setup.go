// Package internal wires flags, config and subcommands into a runnable
// agent command.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulrobello/auto-tool-agent/internal/pipeline"
	"github.com/paulrobello/auto-tool-agent/internal/prompts"
	"github.com/paulrobello/auto-tool-agent/internal/sandbox"
	"github.com/paulrobello/auto-tool-agent/internal/tools"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// Command is one runnable CLI invocation.
type Command interface {
	Run(ctx context.Context) error
}

type Mode int

const (
	HELP Mode = iota
	QUERY
	TOOLS
	PROMPTS
	VERSION
)

var defaultFlags = Configurations{
	OutputFormat:  "markdown",
	MaxIterations: 25,
}

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "query", "q":
		return QUERY, nil
	case "tools", "t":
		return TOOLS, nil
	case "prompts", "p":
		return PROMPTS, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", cmd)
	}
}

// resolveUserRequest from the remaining args, a prompt file, or stdin.
func resolveUserRequest(flagSet Configurations, args []string) (string, error) {
	if flagSet.UserPrompt == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read query from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if flagSet.UserPrompt != "" {
		data, err := utils.ReadText(utils.ExpandUser(flagSet.UserPrompt))
		if err != nil {
			return "", fmt.Errorf("failed to read query from file: %w", err)
		}
		return strings.TrimSpace(data), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

func setupQuery(dataDir string, flagSet Configurations, args []string) (Command, error) {
	conf, err := loadAgentConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(&conf, flagSet, defaultFlags)
	if conf.SandboxDir == "" {
		conf.SandboxDir = utils.DefaultSandboxDir(dataDir)
	}

	userRequest, err := resolveUserRequest(flagSet, args)
	if err != nil {
		return nil, err
	}
	if userRequest == "" {
		return nil, errors.New("no query provided, see 'auto-tool-agent help'")
	}

	if err := prompts.WriteDefaults(utils.PromptsDir(dataDir)); err != nil {
		return nil, err
	}
	systemPrompt, err := prompts.Resolve(utils.PromptsDir(dataDir), conf.SystemPrompt)
	if err != nil {
		return nil, err
	}

	completer, err := CreateCompleter(conf)
	if err != nil {
		return nil, err
	}
	agent, err := pipeline.New(pipeline.Config{
		DataDir:        dataDir,
		SandboxDir:     conf.SandboxDir,
		ClearSandbox:   flagSet.ClearSandbox,
		OutputFormat:   conf.OutputFormat,
		OutputFile:     flagSet.OutputFile,
		SystemPrompt:   systemPrompt,
		MaxIterations:  conf.MaxIterations,
		ToolCallBudget: conf.ToolCallBudget,
		ForceReview:    flagSet.ReviewTools,
		WatchSandbox:   true,
	}, completer)
	if err != nil {
		return nil, err
	}
	return &queryCommand{agent: agent, userRequest: userRequest}, nil
}

// Setup parses the CLI invocation into a runnable Command.
func Setup(ctx context.Context, usage string) (Command, error) {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	}
	flagSet, args, err := parseFlags(defaultFlags, os.Args[1:])
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return nil, err
	}

	dataDir := flagSet.DataDir
	if dataDir == "" {
		dataDir, err = utils.GetDataDir()
		if err != nil {
			return nil, err
		}
	}
	dataDir = utils.ExpandUser(dataDir)
	if err := utils.CreateDataDir(dataDir); err != nil {
		return nil, err
	}
	if err := utils.LoadDotEnv(dataDir); err != nil {
		return nil, err
	}

	switch mode {
	case QUERY:
		return setupQuery(dataDir, flagSet, args[1:])
	case TOOLS:
		conf, err := loadAgentConfig(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(&conf, flagSet, defaultFlags)
		if conf.SandboxDir == "" {
			conf.SandboxDir = utils.DefaultSandboxDir(dataDir)
		}
		return toolsCommand{sandboxDir: conf.SandboxDir, args: args}, nil
	case PROMPTS:
		if err := prompts.WriteDefaults(utils.PromptsDir(dataDir)); err != nil {
			return nil, err
		}
		return promptsCommand{promptsDir: utils.PromptsDir(dataDir), args: args}, nil
	case HELP:
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	case VERSION:
		return nil, printVersion()
	default:
		return nil, fmt.Errorf("unknown mode: %v", mode)
	}
}

type toolsCommand struct {
	sandboxDir string
	args       []string
}

func (t toolsCommand) Run(ctx context.Context) error {
	sb, err := sandbox.Setup(t.sandboxDir, false)
	if err != nil {
		return fmt.Errorf("failed to setup sandbox: %w", err)
	}
	tools.Init(sb.Dir)
	loader := sandbox.NewLoader(sb, sandbox.NewRunner(sb.Dir), tools.Registry)
	if _, err := loader.LoadAll(); err != nil {
		return fmt.Errorf("failed to load sandbox tools: %w", err)
	}
	return tools.SubCmd(ctx, t.args)
}

type promptsCommand struct {
	promptsDir string
	args       []string
}

func (p promptsCommand) Run(ctx context.Context) error {
	return prompts.SubCmd(ctx, p.promptsDir, p.args)
}
