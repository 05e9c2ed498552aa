package ctl

import (
	"fmt"
	"time"

	"github.com/large-farva/oakmon/internal/export"
)

// Export writes an aggregated telemetry snapshot to path. When path is
// empty a timestamped filename in the current directory is used. With
// jsonOut the snapshot is printed to stdout instead of written to a file.
func (c *Client) Export(path, format string, jsonOut bool) error {
	var f export.Format
	switch format {
	case "", "json":
		f = export.FormatJSON
	case "yaml", "yml":
		f = export.FormatYAML
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}

	if jsonOut {
		return printJSON(c.exporter.Snapshot())
	}

	if path == "" {
		ext := string(f)
		path = fmt.Sprintf("oakmon-export-%d.%s", time.Now().Unix(), ext)
	}

	if err := c.exporter.WriteFile(path, f); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", colorize(green, "exported"), path)
	fmt.Println()
	return nil
}
