package feed

import (
	"context"
	"time"

	"github.com/Garsondee/agentview/internal/world"
)

// RunSandbox feeds the built-in sandbox engine into out: the initial state at
// once, then one tick message per interval. It closes out when ctx is done.
func RunSandbox(ctx context.Context, sb *world.Sandbox, every time.Duration, out chan<- Message) {
	defer close(out)
	send := func(m Message) bool {
		select {
		case out <- m:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if !send(FromTick(sb.Snapshot())) {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !send(FromTick(sb.Step())) {
				return
			}
		}
	}
}
