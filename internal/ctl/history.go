package ctl

import (
	"fmt"
	"strings"
	"time"
)

// historyRow mirrors one archived status observation as served by the
// bridge's history endpoint.
type historyRow struct {
	ObservedAt   string   `json:"observed_at"`
	Present      bool     `json:"present"`
	State        string   `json:"state"`
	Healthy      bool     `json:"healthy"`
	CurrentFPS   float64  `json:"current_fps"`
	TotalFrames  int64    `json:"total_frames"`
	ErrorCount   int64    `json:"error_count"`
	TemperatureC *float64 `json:"temperature_c"`
	Issues       []string `json:"issues"`
}

// History fetches archived status observations from a running oakmond
// and renders them newest first.
func History(baseURL string, limit int, jsonOut bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var resp struct {
		History []historyRow `json:"history"`
	}
	path := fmt.Sprintf("/api/history?limit=%d", limit)
	if err := getJSON(baseURL, path, &resp); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Println(header("  STATUS HISTORY"))
	fmt.Printf("  %s\n", colorize(dim, baseURL))
	fmt.Println(rule(50))
	fmt.Println()

	if len(resp.History) == 0 {
		fmt.Println("  No history recorded yet.")
		fmt.Println()
		return nil
	}

	t := newTable("  ", "Observed", "State", "Health", "FPS", "Frames", "Errors", "Temp")
	t.alignRight(3)
	t.alignRight(4)
	t.alignRight(5)
	t.alignRight(6)

	for _, row := range resp.History {
		observed := row.ObservedAt
		if ts, err := time.Parse(time.RFC3339Nano, row.ObservedAt); err == nil {
			observed = ts.Local().Format(time.DateTime)
		}

		if !row.Present {
			t.row(observed, "absent", "", "", "", "", "")
			continue
		}

		health := "unhealthy"
		if row.Healthy {
			health = "healthy"
		}
		temp := ""
		if row.TemperatureC != nil {
			temp = fmt.Sprintf("%.1f°C", *row.TemperatureC)
		}
		t.row(observed,
			row.State,
			health,
			fmt.Sprintf("%.1f", row.CurrentFPS),
			fmt.Sprintf("%d", row.TotalFrames),
			fmt.Sprintf("%d", row.ErrorCount),
			temp,
		)
	}
	t.flush()
	fmt.Println()
	return nil
}
