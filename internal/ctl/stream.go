package ctl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/large-farva/oakmon/internal/export"
	"github.com/large-farva/oakmon/internal/poll"
)

// Stream watches the frame output directory and prints a line whenever
// the newest frame changes, until interrupted. An empty class streams
// every class. The daemon is never contacted; only its output files are
// observed.
func (c *Client) Stream(class string, jsonOut bool) error {
	classes := export.FrameClasses
	if class != "" {
		classes = []string{class}
	}
	interval := time.Duration(c.cfg.Poll.FrameIntervalMillis) * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan poll.FrameEvent, 8)
	for _, cl := range classes {
		p, err := poll.NewFramePoller(c.sel, c.cfg.Daemon.OutputDir, cl, interval)
		if err != nil {
			return err
		}
		go p.Run(ctx, events)
	}

	if !jsonOut {
		fmt.Println()
		fmt.Printf("  %s %s\n", colorize(green, "streaming"), colorize(dim, c.cfg.Daemon.OutputDir))
		fmt.Println(rule(50))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			if !jsonOut {
				fmt.Println()
				fmt.Println(colorize(dim, "  streaming stopped"))
			}
			return nil

		case ev := <-events:
			if !ev.Changed {
				continue
			}
			if jsonOut {
				_ = printJSON(map[string]any{
					"at":    ev.At.Format(time.RFC3339Nano),
					"class": ev.Class,
					"path":  ev.Path,
				})
				continue
			}
			fmt.Printf("  %s %s  %s\n",
				colorize(dim, ev.At.Format("15:04:05")),
				colorize(cyan, padRight(ev.Class, 6)),
				filepath.Base(ev.Path),
			)
		}
	}
}
