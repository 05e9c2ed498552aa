package poll

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one StatusUpdate per interval on
// out. It returns when ctx is cancelled; a cancelled poller never emits
// again, including at the send boundary.
func (p *StatusPoller) Run(ctx context.Context, out chan<- StatusUpdate) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- p.PollOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}

// Run starts the ticker loop and emits one FrameEvent per interval on out.
// Every cycle emits, so consumers see explicit no-change markers between
// transitions. It returns when ctx is cancelled.
func (p *FramePoller) Run(ctx context.Context, out chan<- FrameEvent) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- p.PollOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}
