package agent

import (
	"context"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// Start runs the same query on every tick until ctx is done. Useful for
// recurring report style agents, where the first run writes the tools and
// the following ones only invoke them.
func (a *Agent) Start(ctx context.Context, interval time.Duration, query string) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if _, err := a.Run(ctx, query); err != nil {
				ancli.Errf("agent run failed: %v\n", err)
			}
		}
	}
}
