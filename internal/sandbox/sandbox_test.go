package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sandbox")
	sb, err := Setup(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{SrcDir, MetadataDir, ".git"} {
		if _, err := os.Stat(filepath.Join(sb.Dir, sub)); err != nil {
			t.Errorf("expected '%v' to exist: %v", sub, err)
		}
	}

	t.Run("it should reopen an existing sandbox", func(t *testing.T) {
		marker := filepath.Join(dir, "marker")
		if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if _, err := Setup(dir, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(marker); err != nil {
			t.Fatal("expected sandbox contents to survive")
		}
	})

	t.Run("it should wipe on clear", func(t *testing.T) {
		marker := filepath.Join(dir, "marker")
		if _, err := Setup(dir, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(marker); !os.IsNotExist(err) {
			t.Fatal("expected sandbox to be wiped")
		}
	})
}

func TestCommits(t *testing.T) {
	sb, err := Setup(filepath.Join(t.TempDir(), "sandbox"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tool := ToolDescription{Name: "get_now", Description: "now", Code: "def run(args): pass"}
	if err := tool.Save(sb.Dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sb.CommitTool("session-1", tool, "New Tool: get_now"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("it should noop on a clean worktree", func(t *testing.T) {
		if err := sb.CommitLeftovers("session-1", "nothing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("it should sweep untracked files", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(sb.Dir, "stray.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if err := sb.CommitLeftovers("session-1", "Request: test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSyncRequirements(t *testing.T) {
	sb, err := Setup(filepath.Join(t.TempDir(), "sandbox"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	changed, err := sb.SyncRequirements([]string{"requests", "boto3", "requests", " "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected first sync to change")
	}
	got := sb.Requirements()
	want := []string{"boto3", "requests"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}

	t.Run("it should noop on identical deps", func(t *testing.T) {
		changed, err := sb.SyncRequirements([]string{"boto3", "requests"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if changed {
			t.Fatal("expected no change")
		}
	})
}
