package sandbox

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/paulrobello/auto-tool-agent/internal/utils"
)

const (
	gitAuthorName  = "Auto Agent"
	gitAuthorEmail = "auto-agent@localhost"
)

// Sandbox is the git-versioned tool workspace.
type Sandbox struct {
	Dir  string
	repo *git.Repository
}

// Setup prepares the sandbox dir. With clear set, any previous sandbox is
// removed first. The dir becomes a git repository on first setup so every
// tool revision stays recoverable.
func Setup(dir string, clear bool) (*Sandbox, error) {
	dir = utils.ExpandUser(dir)
	if clear {
		if _, err := os.Stat(dir); err == nil {
			slog.Info("removing old sandbox", "dir", dir)
			if err := os.RemoveAll(dir); err != nil {
				return nil, fmt.Errorf("failed to remove old sandbox: %w", err)
			}
		}
	}
	for _, sub := range []string{SrcDir, MetadataDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), os.FileMode(0o755)); err != nil {
			return nil, fmt.Errorf("failed to create sandbox dir '%v': %w", sub, err)
		}
	}
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Info("initializing sandbox repository", "dir", dir)
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox repository: %w", err)
	}
	return &Sandbox{Dir: dir, repo: repo}, nil
}

func author() *object.Signature {
	return &object.Signature{
		Name:  gitAuthorName,
		Email: gitAuthorEmail,
		When:  time.Now(),
	}
}

// CommitTool stages and commits the tool's code and metadata with the
// session ID in the message.
func (s *Sandbox) CommitTool(sessionID string, tool ToolDescription, message string) error {
	wt, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	for _, path := range []string{tool.ToolPath(), tool.MetadataPath()} {
		if _, err := wt.Add(filepath.ToSlash(path)); err != nil {
			return fmt.Errorf("failed to stage '%v': %w", path, err)
		}
	}
	_, err = wt.Commit(fmt.Sprintf("Session: %v - %v", sessionID, message), &git.CommitOptions{
		Author: author(),
	})
	if err != nil && !errors.Is(err, git.ErrEmptyCommit) {
		return fmt.Errorf("failed to commit tool: %w", err)
	}
	return nil
}

// CommitLeftovers stages anything untracked or modified and commits it.
// A clean worktree is a no-op.
func (s *Sandbox) CommitLeftovers(sessionID, message string) error {
	wt, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return nil
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage leftovers: %w", err)
	}
	_, err = wt.Commit(fmt.Sprintf("Session: %v - %v", sessionID, message), &git.CommitOptions{
		Author: author(),
	})
	if err != nil && !errors.Is(err, git.ErrEmptyCommit) {
		return fmt.Errorf("failed to commit leftovers: %w", err)
	}
	return nil
}

// Diff returns the unified-ish diff of the latest commit touching path, or
// the worktree status line when no history exists yet. Used for review
// logging only.
func (s *Sandbox) Diff(path string) string {
	head, err := s.repo.Head()
	if err != nil {
		return fmt.Sprintf("no history for %v yet", path)
	}
	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Sprintf("no history for %v yet", path)
	}
	if commit.NumParents() == 0 {
		return fmt.Sprintf("%v created in initial commit", path)
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return ""
	}
	patch, err := parent.Patch(commit)
	if err != nil {
		return ""
	}
	var out strings.Builder
	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()
		name := ""
		if to != nil {
			name = to.Path()
		} else if from != nil {
			name = from.Path()
		}
		if name != filepath.ToSlash(path) {
			continue
		}
		for _, chunk := range filePatch.Chunks() {
			out.WriteString(chunk.Content())
		}
	}
	return out.String()
}

// SyncRequirements writes requirements.txt from the sorted, de-duplicated
// dependency list. Reports whether the file changed.
func (s *Sandbox) SyncRequirements(deps []string) (bool, error) {
	seen := make(map[string]bool, len(deps))
	uniq := make([]string, 0, len(deps))
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" || seen[dep] {
			continue
		}
		seen[dep] = true
		uniq = append(uniq, dep)
	}
	sort.Strings(uniq)
	content := strings.Join(uniq, "\n")
	if len(uniq) > 0 {
		content += "\n"
	}
	path := filepath.Join(s.Dir, "requirements.txt")
	prev, err := utils.ReadText(path)
	if err == nil && prev == content {
		return false, nil
	}
	if err := utils.WriteText(path, content); err != nil {
		return false, fmt.Errorf("failed to write requirements.txt: %w", err)
	}
	slog.Info("dependencies changed", "amount", len(uniq))
	return true, nil
}

// Requirements reads the current requirements.txt entries.
func (s *Sandbox) Requirements() []string {
	content, err := utils.ReadText(filepath.Join(s.Dir, "requirements.txt"))
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
