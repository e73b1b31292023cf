package agent

import (
	"context"
	"errors"
	"fmt"
)

// Run answers one query, creating or repairing sandbox tools as needed. The
// returned string is the final result in the configured output format.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	if a.pipe == nil {
		return "", errors.New("agent is not setup, call Setup first")
	}
	res, err := a.pipe.Run(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to run agent: %w", err)
	}
	if a.out != nil {
		fmt.Fprintln(a.out, res)
	}
	return res, nil
}
