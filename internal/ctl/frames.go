package ctl

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/export"
)

// Frames lists the newest frame files per class from the daemon's output
// directory.
func (c *Client) Frames(count int, jsonOut bool) error {
	byClass := make(map[string][]artifacts.Reference, len(export.FrameClasses))
	for _, class := range export.FrameClasses {
		byClass[class] = c.sel.Latest(c.cfg.Daemon.OutputDir, class+"_*.jpg", count)
	}

	if jsonOut {
		return printJSON(byClass)
	}

	fmt.Println()
	fmt.Println(header("  LATEST FRAMES"))
	fmt.Printf("  %s\n", colorize(dim, c.cfg.Daemon.OutputDir))
	fmt.Println(rule(50))
	fmt.Println()

	t := newTable("  ", "Class", "File", "Size", "Modified")
	t.alignRight(2)

	empty := true
	for _, class := range export.FrameClasses {
		for i, ref := range byClass[class] {
			empty = false
			label := ""
			if i == 0 {
				label = class
			}
			t.row(label,
				filepath.Base(ref.Path),
				formatBytes(ref.Size),
				ref.ModTime.Local().Format(time.DateTime),
			)
		}
	}

	if empty {
		fmt.Println("  No frames available.")
		fmt.Println()
		return nil
	}

	t.flush()
	fmt.Println()
	return nil
}
