package prompts

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

func TestSubCmd(t *testing.T) {
	promptsDir := t.TempDir()
	if err := WriteDefaults(promptsDir); err != nil {
		t.Fatalf("failed to write defaults: %v", err)
	}

	t.Run("it should list the template library", func(t *testing.T) {
		var gotErr error
		stdout := testboil.CaptureStdout(t, func(t *testing.T) {
			gotErr = SubCmd(context.Background(), promptsDir, []string{"prompts"})
		})
		if !errors.Is(gotErr, utils.ErrUserInitiatedExit) {
			t.Fatalf("expected user initiated exit, got: %v", gotErr)
		}
		testboil.AssertStringContains(t, stdout, "aws")
	})

	t.Run("it should print one template", func(t *testing.T) {
		var gotErr error
		stdout := testboil.CaptureStdout(t, func(t *testing.T) {
			gotErr = SubCmd(context.Background(), promptsDir, []string{"prompts", "aws"})
		})
		if !errors.Is(gotErr, utils.ErrUserInitiatedExit) {
			t.Fatalf("expected user initiated exit, got: %v", gotErr)
		}
		testboil.AssertStringContains(t, stdout, "You are an AWS data analyst.")
	})

	t.Run("it should error on unknown templates", func(t *testing.T) {
		err := SubCmd(context.Background(), promptsDir, []string{"prompts", "no-such-template"})
		if err == nil || errors.Is(err, utils.ErrUserInitiatedExit) {
			t.Fatalf("expected lookup error, got: %v", err)
		}
	})
}
