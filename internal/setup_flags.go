package internal

import (
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

// Configurations carries the parsed CLI flags.
type Configurations struct {
	OutputFormat  string
	OutputFile    string
	SystemPrompt  string
	MaxIterations int
	Provider      string
	Model         string
	DataDir       string
	SandboxDir    string
	ClearSandbox  bool
	UserPrompt    string
	ReviewTools   bool
}

func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("auto-tool-agent", flag.ContinueOnError)
	fs.String("A-helpful-nonexisting-flag", "there is no default", "This isn't a flag. It's only here to tell you that 'auto-tool-agent h/help' gives better overview of usage than '-h'.")

	fShort := fs.String("f", defaults.OutputFormat, "Set the output format. Mutually exclusive with format flag.")
	fLong := fs.String("format", defaults.OutputFormat, "Set the output format. Mutually exclusive with f flag.")

	oShort := fs.String("o", defaults.OutputFile, "Set the file to write the final result to. Mutually exclusive with output flag.")
	oLong := fs.String("output", defaults.OutputFile, "Set the file to write the final result to. Mutually exclusive with o flag.")

	sShort := fs.String("s", defaults.SystemPrompt, "Set the system prompt template name or file for the results phase. Mutually exclusive with system-prompt flag.")
	sLong := fs.String("system-prompt", defaults.SystemPrompt, "Set the system prompt template name or file for the results phase. Mutually exclusive with s flag.")

	mShort := fs.Int("m", defaults.MaxIterations, "Set the pipeline iteration budget. Mutually exclusive with max-iterations flag.")
	mLong := fs.Int("max-iterations", defaults.MaxIterations, "Set the pipeline iteration budget. Mutually exclusive with m flag.")

	pShort := fs.String("P", defaults.Provider, "Set the llm provider. Mutually exclusive with provider flag.")
	pLong := fs.String("provider", defaults.Provider, "Set the llm provider. Mutually exclusive with P flag.")

	modelShort := fs.String("M", defaults.Model, "Set the model name. Mutually exclusive with model flag.")
	modelLong := fs.String("model", defaults.Model, "Set the model name. Mutually exclusive with M flag.")

	dShort := fs.String("d", defaults.DataDir, "Set the data directory. Mutually exclusive with data-dir flag.")
	dLong := fs.String("data-dir", defaults.DataDir, "Set the data directory. Mutually exclusive with d flag.")

	sandboxDir := fs.String("sandbox-dir", defaults.SandboxDir, "Set the sandbox directory. Defaults to <data-dir>/sandbox.")
	clearSandbox := fs.Bool("clear-sandbox", defaults.ClearSandbox, "Set to true to wipe the sandbox before the run.")

	uShort := fs.String("u", defaults.UserPrompt, "Read the query from this file, '-' for stdin. Mutually exclusive with user-prompt flag.")
	uLong := fs.String("user-prompt", defaults.UserPrompt, "Read the query from this file, '-' for stdin. Mutually exclusive with u flag.")

	reviewTools := fs.Bool("review-tools", defaults.ReviewTools, "Set to true to force review of every needed tool.")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}

	postParseArgs := fs.Args()

	outputFormat, err := utils.ReturnNonDefault(*fShort, *fLong, defaults.OutputFormat)
	exitWithFlagError(err, "f", "format")
	outputFile, err := utils.ReturnNonDefault(*oShort, *oLong, defaults.OutputFile)
	exitWithFlagError(err, "o", "output")
	systemPrompt, err := utils.ReturnNonDefault(*sShort, *sLong, defaults.SystemPrompt)
	exitWithFlagError(err, "s", "system-prompt")
	maxIterations, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.MaxIterations)
	exitWithFlagError(err, "m", "max-iterations")
	provider, err := utils.ReturnNonDefault(*pShort, *pLong, defaults.Provider)
	exitWithFlagError(err, "P", "provider")
	model, err := utils.ReturnNonDefault(*modelShort, *modelLong, defaults.Model)
	exitWithFlagError(err, "M", "model")
	dataDir, err := utils.ReturnNonDefault(*dShort, *dLong, defaults.DataDir)
	exitWithFlagError(err, "d", "data-dir")
	userPrompt, err := utils.ReturnNonDefault(*uShort, *uLong, defaults.UserPrompt)
	exitWithFlagError(err, "u", "user-prompt")

	newConf := Configurations{
		OutputFormat:  outputFormat,
		OutputFile:    outputFile,
		SystemPrompt:  systemPrompt,
		MaxIterations: maxIterations,
		Provider:      provider,
		Model:         model,
		DataDir:       dataDir,
		SandboxDir:    *sandboxDir,
		ClearSandbox:  *clearSandbox,
		UserPrompt:    userPrompt,
		ReviewTools:   *reviewTools,
	}

	return newConf, postParseArgs, nil
}

func exitWithFlagError(err error, shortFlag, longflag string) {
	if err != nil {
		if err.Error() == "values are mutually exclusive" {
			ancli.PrintErr(fmt.Sprintf("flags: '%v' and '%v' are mutually exclusive, err: %v\n", shortFlag, longflag, err))
		} else {
			ancli.PrintErr(fmt.Sprintf("unexpected error: %v", err))
		}
		os.Exit(1)
	}
}
