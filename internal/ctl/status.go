package ctl

import (
	"fmt"
	"time"
)

// Status reads the daemon's status document and prints a formatted
// summary. An absent document is reported as "not running", not an error.
func (c *Client) Status(jsonOut bool) error {
	st := c.store.ReadStatus()

	if jsonOut {
		return printJSON(st)
	}

	fmt.Println()
	fmt.Println(header("  DEPTHAI DAEMON STATUS"))
	fmt.Println(rule(40))

	if st == nil {
		fmt.Println("  Daemon not running or status unavailable.")
		fmt.Println()
		return nil
	}

	uptime := formatUptime(time.Duration(st.Stats.UptimeSeconds * float64(time.Second)))

	fmt.Printf("  %-14s %s\n", colorize(dim, "State:"), colorize(stateColor(st.State), st.State))
	fmt.Printf("  %-14s %d\n", colorize(dim, "PID:"), st.PID)
	fmt.Printf("  %-14s %s\n", colorize(dim, "Uptime:"), uptime)
	fmt.Printf("  %-14s %d\n", colorize(dim, "Frames:"), st.Stats.TotalFrames)
	fmt.Printf("  %-14s %.1f\n", colorize(dim, "Current FPS:"), st.Stats.CurrentFPS)
	fmt.Printf("  %-14s %.1f\n", colorize(dim, "Average FPS:"), st.Stats.AverageFPS)
	fmt.Printf("  %-14s %d\n", colorize(dim, "Errors:"), st.Stats.ErrorCount)
	if st.Stats.IMUDataCount > 0 {
		fmt.Printf("  %-14s %d\n", colorize(dim, "IMU samples:"), st.Stats.IMUDataCount)
	}
	if st.Stats.CurrentTemperatureC != nil {
		fmt.Printf("  %-14s %.1f°C\n", colorize(dim, "Temperature:"), *st.Stats.CurrentTemperatureC)
	}

	fmt.Println()
	fmt.Printf("  %-14s %s\n", colorize(dim, "Health:"), colorize(healthColor(st.Health.Status), st.Health.Status))
	for _, issue := range st.Health.Issues {
		fmt.Printf("    %s %s\n", colorize(yellow, "•"), issue)
	}
	fmt.Println()

	return nil
}
