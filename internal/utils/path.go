package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// ErrUserInitiatedExit is returned when the user asked for a graceful exit,
// for example via a help or list subcommand. It's not an error condition.
var ErrUserInitiatedExit = errors.New("user initiated exit")

type contextKey string

// ContextCancelKey holds the root context's cancel func so that deeply nested
// operations may stop the run cleanly.
const ContextCancelKey contextKey = "cancel"

// GetDataDir returns the path to the auto-tool-agent data directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/auto-tool-agent, unless overridden by
// AUTO_TOOL_AGENT_DATA_DIR.
func GetDataDir() (string, error) {
	if dataDir := os.Getenv("AUTO_TOOL_AGENT_DATA_DIR"); dataDir != "" {
		return dataDir, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, "auto-tool-agent"), nil
}

// DefaultSandboxDir is <dataDir>/sandbox, the directory where generated
// tools live.
func DefaultSandboxDir(dataDir string) string {
	return path.Join(dataDir, "sandbox")
}

// PromptsDir holds the yaml system prompt templates.
func PromptsDir(dataDir string) string {
	return path.Join(dataDir, "prompts")
}

// CreateDataDir creates the data directory tree if any part is missing.
func CreateDataDir(dataDirPath string) error {
	for _, dir := range []string{dataDirPath, PromptsDir(dataDirPath)} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			ancli.Okf("created data directory: '%v'\n", dir)
		}
	}
	return nil
}

// ExpandUser replaces a leading ~ with the user's home directory.
func ExpandUser(p string) string {
	if p == "~" || len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}

// CancelFromContext returns the root cancel func if one was stored.
func CancelFromContext(ctx context.Context) (context.CancelFunc, bool) {
	cancel, ok := ctx.Value(ContextCancelKey).(context.CancelFunc)
	return cancel, ok
}
