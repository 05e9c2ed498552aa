// Package export assembles a point-in-time bundle of every telemetry
// source the daemon exposes on disk: status, configuration, recent IMU
// samples with their analysis, recent log lines, and the newest frame
// references per class.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/daemon"
	"github.com/large-farva/oakmon/internal/imu"
	"github.com/large-farva/oakmon/internal/logtail"
)

// Default window sizes for one snapshot.
const (
	IMUSampleWindow = 100
	LogLineWindow   = 100
	FrameWindow     = 10
)

// FrameClasses are the frame artifact classes the daemon produces.
var FrameClasses = []string{"rgb", "depth"}

// Format selects the on-disk encoding of an exported snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Snapshot is one aggregated telemetry bundle. It is built fresh on every
// request and never mutated or cached afterwards. Every field degrades
// independently: a missing configuration does not block status or frames.
type Snapshot struct {
	ExportID      string                           `json:"export_id" yaml:"export_id"`
	Timestamp     string                           `json:"timestamp" yaml:"timestamp"`
	Status        *daemon.Status                   `json:"status" yaml:"status"`
	Config        map[string]any                   `json:"config" yaml:"config"`
	RecentIMUData []daemon.IMUSample               `json:"recent_imu_data" yaml:"recent_imu_data"`
	IMUAnalysis   *imu.Analysis                    `json:"imu_analysis,omitempty" yaml:"imu_analysis,omitempty"`
	RecentLogs    []string                         `json:"recent_logs" yaml:"recent_logs"`
	LatestFrames  map[string][]artifacts.Reference `json:"latest_frames" yaml:"latest_frames"`
}

// Exporter builds snapshots from the individual telemetry sources.
type Exporter struct {
	store    *daemon.Store
	sel      *artifacts.Selector
	analyzer *imu.Analyzer
	logs     *logtail.Source
	frameDir string
}

// NewExporter wires an Exporter from its sources. frameDir is the daemon's
// frame output directory.
func NewExporter(store *daemon.Store, sel *artifacts.Selector, analyzer *imu.Analyzer, logs *logtail.Source, frameDir string) *Exporter {
	return &Exporter{
		store:    store,
		sel:      sel,
		analyzer: analyzer,
		logs:     logs,
		frameDir: frameDir,
	}
}

// Snapshot collects every source once and returns the stamped bundle.
func (e *Exporter) Snapshot() Snapshot {
	snap := Snapshot{
		ExportID:      uuid.NewString(),
		Timestamp:     time.Now().Format(time.RFC3339Nano),
		Status:        e.store.ReadStatus(),
		Config:        e.store.ReadConfig(),
		RecentIMUData: e.analyzer.Load(IMUSampleWindow),
		IMUAnalysis:   e.analyzer.Analyze(IMUSampleWindow),
		RecentLogs:    e.logs.Tail(LogLineWindow),
		LatestFrames:  make(map[string][]artifacts.Reference, len(FrameClasses)),
	}
	for _, class := range FrameClasses {
		snap.LatestFrames[class] = e.sel.Latest(e.frameDir, class+"_*.jpg", FrameWindow)
	}
	return snap
}

// WriteFile takes a fresh snapshot and writes it to path in the given
// format. JSON output is indented to stay diff- and grep-friendly.
func (e *Exporter) WriteFile(path string, format Format) error {
	snap := e.Snapshot()

	var b []byte
	var err error
	switch format {
	case FormatJSON, "":
		b, err = json.MarshalIndent(snap, "", "  ")
	case FormatYAML:
		b, err = yaml.Marshal(snap)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("export: encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}
