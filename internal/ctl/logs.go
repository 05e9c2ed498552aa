package ctl

import (
	"fmt"
	"strings"
)

// Logs prints the last n lines of the daemon's log file.
func (c *Client) Logs(n int, jsonOut bool) error {
	lines := c.logs.Tail(n)

	if jsonOut {
		return printJSON(map[string]any{"lines": lines})
	}

	fmt.Println()
	fmt.Println(header("  DAEMON LOG"))
	fmt.Printf("  %s\n", colorize(dim, c.cfg.Daemon.LogPath))
	fmt.Println(rule(50))
	fmt.Println()

	if len(lines) == 0 {
		fmt.Println("  No log lines available.")
		fmt.Println()
		return nil
	}

	for _, line := range lines {
		fmt.Printf("  %s\n", colorizeLogLine(line))
	}
	fmt.Println()
	return nil
}

// colorizeLogLine highlights the level token of a daemon log line. Lines
// that don't carry a recognizable level are printed unchanged.
func colorizeLogLine(line string) string {
	switch {
	case strings.Contains(line, "ERROR"):
		return colorize(red, line)
	case strings.Contains(line, "WARNING"), strings.Contains(line, "WARN"):
		return colorize(yellow, line)
	default:
		return line
	}
}
