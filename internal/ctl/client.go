package ctl

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/config"
	"github.com/large-farva/oakmon/internal/daemon"
	"github.com/large-farva/oakmon/internal/export"
	"github.com/large-farva/oakmon/internal/imu"
	"github.com/large-farva/oakmon/internal/logtail"
)

// Client bundles the telemetry sources every local command reads from.
// Diagnostics (missing files, malformed documents) go to the injected
// logger so they land on stderr without disturbing rendered output.
type Client struct {
	cfg      config.Config
	store    *daemon.Store
	sel      *artifacts.Selector
	analyzer *imu.Analyzer
	logs     *logtail.Source
	exporter *export.Exporter
}

// NewClient wires a Client from the oakmon configuration.
func NewClient(cfg config.Config, logger *log.Logger) *Client {
	d := cfg.Daemon
	store := daemon.NewStore(d.StatusPath, d.ConfigPath, logger)
	sel := artifacts.NewSelector(logger)
	analyzer := imu.NewAnalyzer(d.IMUDir(), sel, store, logger)
	logs := logtail.NewSource(d.LogPath, logger)

	return &Client{
		cfg:      cfg,
		store:    store,
		sel:      sel,
		analyzer: analyzer,
		logs:     logs,
		exporter: export.NewExporter(store, sel, analyzer, logs, d.OutputDir),
	}
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

// getJSON sends a GET request to oakmond and decodes the JSON response.
func getJSON(baseURL, path string, dst any) error {
	url := strings.TrimRight(baseURL, "/") + path
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(b))
		if msg != "" {
			return fmt.Errorf("HTTP %s: %s", resp.Status, msg)
		}
		return fmt.Errorf("HTTP %s from %s", resp.Status, path)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// printJSON prints v as indented JSON to stdout.
func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
