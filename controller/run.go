package controller

import (
	"context"
	"time"
)

// Run is the headless event loop. It polls liveness every PollInterval,
// refreshes the catalog on the configured period, follows navigation changes
// and opens every line received on intents. It returns when ctx is done.
func (c *Controller) Run(ctx context.Context, intents <-chan string) error {
	updates, unsubscribe := c.nav.Subscribe()
	defer unsubscribe()

	poll := time.NewTicker(PollInterval)
	defer poll.Stop()

	var refresh <-chan time.Time
	if c.opts.Refresh > 0 {
		t := time.NewTicker(c.opts.Refresh)
		defer t.Stop()
		refresh = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			c.Poll()
		case <-refresh:
			_ = c.Refresh(ctx)
		case loc := <-updates:
			c.Navigated(loc)
		case raw, ok := <-intents:
			if !ok {
				intents = nil
				continue
			}
			c.Submit(raw)
		}
	}
}
