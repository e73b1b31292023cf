package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/paulrobello/auto-tool-agent/internal/pipeline"
)

type queryCommand struct {
	agent       *pipeline.Agent
	userRequest string
}

func (q *queryCommand) Run(ctx context.Context) error {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Okf("session: %v\n", q.agent.SessionID())
	}
	if _, err := q.agent.Run(ctx, q.userRequest); err != nil {
		return fmt.Errorf("agent run failed: %w", err)
	}
	return nil
}
