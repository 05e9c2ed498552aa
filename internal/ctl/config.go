package ctl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ConfigShow fetches and displays the daemon's configuration document.
func (c *Client) ConfigShow(jsonOut bool) error {
	raw := c.store.ReadConfig()

	if jsonOut {
		return printJSON(raw)
	}

	fmt.Println()
	fmt.Println(header("  DAEMON CONFIGURATION"))
	fmt.Println(rule(50))

	if raw == nil {
		fmt.Println("  Configuration unavailable.")
		fmt.Println()
		return nil
	}

	// Decode into ordered sections for human-readable output. Unknown
	// sections and keys still exist in the raw tree; they just are not
	// rendered here.
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var cfg struct {
		Camera struct {
			RGBResolution []int   `json:"rgb_resolution"`
			RGBFPS        float64 `json:"rgb_fps"`
			DepthEnabled  bool    `json:"depth_enabled"`
			IMUEnabled    bool    `json:"imu_enabled"`
			IMUFrequency  float64 `json:"imu_frequency"`
		} `json:"camera"`
		AI struct {
			ModelEnabled        bool    `json:"model_enabled"`
			ModelPath           string  `json:"model_path"`
			ConfidenceThreshold float64 `json:"confidence_threshold"`
		} `json:"ai"`
		Output struct {
			SaveFrames      bool   `json:"save_frames"`
			OutputDirectory string `json:"output_directory"`
			MaxFiles        int    `json:"max_files"`
		} `json:"output"`
		Service struct {
			HealthCheckInterval float64 `json:"health_check_interval"`
			LogLevel            string  `json:"log_level"`
		} `json:"service"`
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return err
	}

	section := func(name string) {
		fmt.Printf("\n  %s\n", colorize(bold, "["+name+"]"))
	}
	field := func(key string, val any) {
		fmt.Printf("    %-22s %v\n", colorize(dim, key+":"), val)
	}

	section("camera")
	if len(cfg.Camera.RGBResolution) == 2 {
		field("rgb_resolution", fmt.Sprintf("%dx%d", cfg.Camera.RGBResolution[0], cfg.Camera.RGBResolution[1]))
	}
	field("rgb_fps", cfg.Camera.RGBFPS)
	field("depth_enabled", cfg.Camera.DepthEnabled)
	field("imu_enabled", cfg.Camera.IMUEnabled)
	if cfg.Camera.IMUEnabled {
		field("imu_frequency", fmt.Sprintf("%.0f Hz", cfg.Camera.IMUFrequency))
	}

	section("ai")
	field("model_enabled", cfg.AI.ModelEnabled)
	if cfg.AI.ModelEnabled {
		field("model_path", cfg.AI.ModelPath)
		field("confidence_threshold", cfg.AI.ConfidenceThreshold)
	}

	section("output")
	field("save_frames", cfg.Output.SaveFrames)
	field("output_directory", cfg.Output.OutputDirectory)
	field("max_files", cfg.Output.MaxFiles)

	section("service")
	field("health_check_interval", cfg.Service.HealthCheckInterval)
	field("log_level", cfg.Service.LogLevel)

	fmt.Println()
	return nil
}

// ConfigSet merges key=value assignments into the daemon's configuration.
// Keys are dotted paths into the JSON tree ("camera.rgb_fps=25"); values
// parse as JSON literals where possible and fall back to plain strings.
// Sibling keys are never touched; this is a merge, not a rewrite.
func (c *Client) ConfigSet(assignments []string, jsonOut bool) error {
	if len(assignments) == 0 {
		return fmt.Errorf("no key=value assignments given")
	}

	partial := make(map[string]any)
	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return fmt.Errorf("bad assignment %q, want key.path=value", a)
		}
		setPath(partial, strings.Split(key, "."), parseValue(raw))
	}

	ok := c.store.UpdateConfig(partial)

	if jsonOut {
		return printJSON(map[string]any{"ok": ok})
	}
	fmt.Println()
	if ok {
		fmt.Printf("  %s  configuration updated\n", colorize(green, "OK"))
		fmt.Println(colorize(dim, "  reload the daemon with: sudo systemctl kill -s HUP depthai-daemon"))
	} else {
		fmt.Printf("  %s  configuration update failed\n", colorize(red, "ERROR"))
	}
	fmt.Println()
	if !ok {
		return fmt.Errorf("configuration update failed")
	}
	return nil
}

// SetFPS is shorthand for ConfigSet("camera.rgb_fps=<n>").
func (c *Client) SetFPS(fps int, jsonOut bool) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	return c.ConfigSet([]string{fmt.Sprintf("camera.rgb_fps=%d", fps)}, jsonOut)
}

// setPath writes value at the dotted path inside tree, creating nested
// maps along the way.
func setPath(tree map[string]any, path []string, value any) {
	for len(path) > 1 {
		sub, ok := tree[path[0]].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			tree[path[0]] = sub
		}
		tree = sub
		path = path[1:]
	}
	tree[path[0]] = value
}

// parseValue interprets raw as a JSON literal (number, bool, null, array,
// object) and falls back to the raw string.
func parseValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
