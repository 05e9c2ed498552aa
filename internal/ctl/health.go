package ctl

import (
	"fmt"
)

// Health prints the daemon's health verdict and any reported issues. The
// verdict requires both a running process state and a "healthy" health
// status; either one alone is not enough.
func (c *Client) Health(jsonOut bool) error {
	st := c.store.ReadStatus()
	healthy := st.Healthy()

	if jsonOut {
		out := map[string]any{"healthy": healthy}
		if st != nil {
			out["state"] = st.State
			out["health"] = st.Health
		}
		return printJSON(out)
	}

	fmt.Println()
	switch {
	case st == nil:
		fmt.Printf("  %s  daemon not running or status unavailable\n", colorize(red, "UNHEALTHY"))
	case healthy:
		fmt.Printf("  %s  daemon is running and reports healthy\n", colorize(green, "HEALTHY"))
	default:
		fmt.Printf("  %s  state %s, health %s\n",
			colorize(red, "UNHEALTHY"),
			colorize(stateColor(st.State), st.State),
			colorize(healthColor(st.Health.Status), st.Health.Status),
		)
	}

	if st != nil {
		for _, issue := range st.Health.Issues {
			fmt.Printf("    %s %s\n", colorize(yellow, "!"), issue)
		}
	}
	fmt.Println()
	return nil
}
