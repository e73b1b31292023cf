package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// shRunner executes the tool scripts with sh so the tests don't depend on a
// python install.
func shRunner(t *testing.T) *Runner {
	t.Helper()
	sb, err := Setup(filepath.Join(t.TempDir(), "sandbox"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := NewRunner(sb.Dir)
	r.Interpreter = "sh"
	return r
}

func writeScript(t *testing.T, r *Runner, name, script string) {
	t.Helper()
	path := filepath.Join(r.SandboxDir, SrcDir, name+".py")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}

func TestRun(t *testing.T) {
	t.Run("it should decode the result contract", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "get_now", `echo '{"error": null, "result": "2026-08-30"}'`)
		got, err := r.Run(context.Background(), "get_now", models.Input{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "2026-08-30" {
			t.Fatalf("expected result, got: %v", got)
		}
	})

	t.Run("it should keep non string results as json", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "list_things", `echo '{"error": null, "result": [1, 2]}'`)
		got, err := r.Run(context.Background(), "list_things", models.Input{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "[1, 2]" {
			t.Fatalf("expected raw json result, got: %v", got)
		}
	})

	t.Run("it should pass inputs as a json argument", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "echo_args", `printf '{"error": null, "result": "%s"}' "$(printf '%s' "$1" | tr -d '"{}')"`)
		got, err := r.Run(context.Background(), "echo_args", models.Input{"city": "Lund"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "city") || !strings.Contains(got, "Lund") {
			t.Fatalf("expected inputs to reach the tool, got: %v", got)
		}
	})

	t.Run("it should surface tool errors", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "broken", `echo '{"error": "no credentials", "result": null}'`)
		_, err := r.Run(context.Background(), "broken", models.Input{})
		if err == nil || !strings.Contains(err.Error(), "no credentials") {
			t.Fatalf("expected tool error, got: %v", err)
		}
	})

	t.Run("it should surface crashes with stderr", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "crashes", `echo "boom" >&2; exit 3`)
		_, err := r.Run(context.Background(), "crashes", models.Input{})
		if err == nil || !strings.Contains(err.Error(), "boom") {
			t.Fatalf("expected crash error, got: %v", err)
		}
	})

	t.Run("it should time out", func(t *testing.T) {
		r := shRunner(t)
		r.Timeout = 50 * time.Millisecond
		writeScript(t, r, "slow", `sleep 5`)
		_, err := r.Run(context.Background(), "slow", models.Input{})
		if err == nil || !strings.Contains(err.Error(), "timed out") {
			t.Fatalf("expected timeout, got: %v", err)
		}
	})

	t.Run("it should reject invalid names", func(t *testing.T) {
		r := shRunner(t)
		_, err := r.Run(context.Background(), "../escape", models.Input{})
		if err == nil {
			t.Fatal("expected error on invalid name")
		}
	})

	t.Run("it should fall back to raw output", func(t *testing.T) {
		r := shRunner(t)
		writeScript(t, r, "raw", `echo 'just text'`)
		got, err := r.Run(context.Background(), "raw", models.Input{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "just text" {
			t.Fatalf("expected raw output, got: %v", got)
		}
	})
}
