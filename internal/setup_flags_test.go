package internal

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_parseFlags(t *testing.T) {
	t.Run("it should return defaults when no flags are passed", func(t *testing.T) {
		got, args, err := parseFlags(defaultFlags, []string{"query", "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got.OutputFormat, defaultFlags.OutputFormat)
		testboil.FailTestIfDiff(t, got.MaxIterations, defaultFlags.MaxIterations)
		testboil.FailTestIfDiff(t, len(args), 2)
		testboil.FailTestIfDiff(t, args[0], "query")
	})

	t.Run("it should parse short flags", func(t *testing.T) {
		got, args, err := parseFlags(defaultFlags, []string{
			"-f", "json", "-m", "5", "-P", "ollama", "-M", "llama3.2", "q", "hi",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got.OutputFormat, "json")
		testboil.FailTestIfDiff(t, got.MaxIterations, 5)
		testboil.FailTestIfDiff(t, got.Provider, "ollama")
		testboil.FailTestIfDiff(t, got.Model, "llama3.2")
		testboil.FailTestIfDiff(t, args[0], "q")
	})

	t.Run("it should parse long flags", func(t *testing.T) {
		got, _, err := parseFlags(defaultFlags, []string{
			"-format", "csv", "-data-dir", "/tmp/x", "-sandbox-dir", "/tmp/sb",
			"-clear-sandbox", "-review-tools", "query", "hi",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got.OutputFormat, "csv")
		testboil.FailTestIfDiff(t, got.DataDir, "/tmp/x")
		testboil.FailTestIfDiff(t, got.SandboxDir, "/tmp/sb")
		testboil.FailTestIfDiff(t, got.ClearSandbox, true)
		testboil.FailTestIfDiff(t, got.ReviewTools, true)
	})

	t.Run("it should error on unknown flags", func(t *testing.T) {
		_, _, err := parseFlags(defaultFlags, []string{"-no-such-flag", "query"})
		if err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func Test_applyFlagOverrides(t *testing.T) {
	conf := AgentConfig{
		Provider:      "anthropic",
		Model:         "claude-sonnet-4-0",
		OutputFormat:  "markdown",
		MaxIterations: 25,
	}
	flagSet := defaultFlags
	flagSet.Provider = "openai"
	flagSet.MaxIterations = 3
	applyFlagOverrides(&conf, flagSet, defaultFlags)

	testboil.FailTestIfDiff(t, conf.Provider, "openai")
	testboil.FailTestIfDiff(t, conf.MaxIterations, 3)
	// Untouched flags keep the file values
	testboil.FailTestIfDiff(t, conf.Model, "claude-sonnet-4-0")
	testboil.FailTestIfDiff(t, conf.OutputFormat, "markdown")
}
