package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_getModeFromArgs(t *testing.T) {
	testCases := []struct {
		name string
		arg  string
		want Mode
	}{
		{name: "query", arg: "query", want: QUERY},
		{name: "q", arg: "q", want: QUERY},
		{name: "tools", arg: "tools", want: TOOLS},
		{name: "t", arg: "t", want: TOOLS},
		{name: "prompts", arg: "prompts", want: PROMPTS},
		{name: "p", arg: "p", want: PROMPTS},
		{name: "version", arg: "version", want: VERSION},
		{name: "v", arg: "v", want: VERSION},
		{name: "help", arg: "help", want: HELP},
		{name: "h", arg: "h", want: HELP},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := getModeFromArgs(tc.arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}

	t.Run("it should error on unknown commands", func(t *testing.T) {
		if _, err := getModeFromArgs("transmogrify"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func Test_resolveUserRequest(t *testing.T) {
	t.Run("it should join the remaining args", func(t *testing.T) {
		got, err := resolveUserRequest(Configurations{}, []string{"what", "is", "it?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "what is it?")
	})

	t.Run("it should read the query from a file", func(t *testing.T) {
		queryFile := filepath.Join(t.TempDir(), "query.txt")
		if err := os.WriteFile(queryFile, []byte("from the file\n"), 0o644); err != nil {
			t.Fatalf("failed to write query file: %v", err)
		}
		got, err := resolveUserRequest(Configurations{UserPrompt: queryFile}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "from the file")
	})

	t.Run("it should error on missing query files", func(t *testing.T) {
		_, err := resolveUserRequest(Configurations{UserPrompt: "/no/such/file"}, nil)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func Test_loadAgentConfig(t *testing.T) {
	dataDir := t.TempDir()
	conf, err := loadAgentConfig(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf != DefaultAgentConfig {
		t.Fatalf("expected default config, got: %+v", conf)
	}

	t.Run("it should persist the default config file", func(t *testing.T) {
		if _, err := os.Stat(filepath.Join(dataDir, "agentConfig.json")); err != nil {
			t.Fatalf("expected config file: %v", err)
		}
	})
}
