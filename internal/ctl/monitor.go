package ctl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/large-farva/oakmon/internal/poll"
)

// Monitor re-reads the status document on the configured interval and
// prints one summary line per poll until interrupted. Each line comes
// from a fresh read; when the daemon disappears mid-run the next line
// says so instead of repeating stale numbers.
func (c *Client) Monitor(jsonOut bool) error {
	interval := time.Duration(c.cfg.Poll.StatusIntervalSeconds * float64(time.Second))
	p, err := poll.NewStatusPoller(c.store, interval)
	if err != nil {
		return err
	}

	if !jsonOut {
		fmt.Println()
		fmt.Printf("  %s %s\n", colorize(green, "monitoring"), colorize(dim, c.cfg.Daemon.StatusPath))
		fmt.Println(rule(50))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan poll.StatusUpdate, 1)
	go p.Run(ctx, updates)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			if !jsonOut {
				fmt.Println()
				fmt.Println(colorize(dim, "  monitoring stopped"))
			}
			return nil

		case u := <-updates:
			if jsonOut {
				_ = printJSON(map[string]any{
					"at":     u.At.Format(time.RFC3339Nano),
					"status": u.Status,
				})
				continue
			}

			ts := colorize(dim, u.At.Format("15:04:05"))
			if u.Status == nil {
				fmt.Printf("  %s %s\n", ts, colorize(red, "daemon not available"))
				continue
			}

			st := u.Status
			line := fmt.Sprintf("%s  fps %.1f  frames %d  health %s",
				colorize(stateColor(st.State), padRight(st.State, 8)),
				st.Stats.CurrentFPS,
				st.Stats.TotalFrames,
				colorize(healthColor(st.Health.Status), st.Health.Status),
			)
			if st.Stats.CurrentTemperatureC != nil {
				line += fmt.Sprintf("  %s", colorize(dim, fmt.Sprintf("%.1f°C", *st.Stats.CurrentTemperatureC)))
			}
			fmt.Printf("  %s %s\n", ts, line)
		}
	}
}
