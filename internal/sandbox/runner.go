package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

// DefaultToolTimeout bounds a single tool script invocation.
const DefaultToolTimeout = 60 * time.Second

// Runner executes tool scripts with their interpreter, passing the inputs as
// one json argument and decoding the json result from stdout.
type Runner struct {
	SandboxDir  string
	Interpreter string
	Timeout     time.Duration
}

// NewRunner returns a Runner with the python3 interpreter and the default
// timeout.
func NewRunner(sandboxDir string) *Runner {
	return &Runner{
		SandboxDir:  sandboxDir,
		Interpreter: "python3",
		Timeout:     DefaultToolTimeout,
	}
}

type toolResult struct {
	Error  *string         `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Run executes the tool named name with the given inputs. All failures come
// back as an error so the caller can stringify them for the model.
func (r *Runner) Run(ctx context.Context, name string, inputs models.Input) (string, error) {
	if !ValidToolName(name) {
		return "", fmt.Errorf("invalid tool name: '%v'", name)
	}
	argJSON, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool inputs: %w", err)
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scriptPath := filepath.Join(r.SandboxDir, SrcDir, name+".py")
	cmd := exec.CommandContext(runCtx, r.Interpreter, scriptPath, string(argJSON))
	cmd.Dir = r.SandboxDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("tool '%v' timed out after %v", name, timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("tool '%v' failed: %w, output: %v", name, err, msg)
	}

	out := strings.TrimSpace(stdout.String())
	var res toolResult
	if jsonErr := json.Unmarshal([]byte(out), &res); jsonErr != nil {
		// Tools are supposed to print the result contract, but a raw
		// reply is still better than nothing
		return out, nil
	}
	if res.Error != nil && *res.Error != "" {
		return "", fmt.Errorf("tool '%v' returned error: %v", name, *res.Error)
	}
	var asString string
	if err := json.Unmarshal(res.Result, &asString); err == nil {
		return asString, nil
	}
	return string(res.Result), nil
}
