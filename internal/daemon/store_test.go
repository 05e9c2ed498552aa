package daemon

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, out io.Writer) (*Store, string) {
	t.Helper()
	if out == nil {
		out = io.Discard
	}
	dir := t.TempDir()
	s := NewStore(
		filepath.Join(dir, "status.json"),
		filepath.Join(dir, "config.json"),
		log.New(out, "", 0),
	)
	return s, dir
}

const goodStatus = `{
	"timestamp": "2026-08-30T10:00:00",
	"status": "running",
	"pid": 4242,
	"stats": {
		"uptime_seconds": 3723.5,
		"uptime_formatted": "1h 2m 3s",
		"total_frames": 90210,
		"error_count": 2,
		"current_fps": 29.7,
		"average_fps": 29.9,
		"imu_data_count": 180420,
		"current_temperature_c": 41.5,
		"last_frame_time": "2026-08-30T09:59:59"
	},
	"health": {"status": "healthy", "issues": []}
}`

func TestReadStatus_OK(t *testing.T) {
	s, _ := newTestStore(t, nil)
	if err := os.WriteFile(s.StatusPath, []byte(goodStatus), 0o644); err != nil {
		t.Fatal(err)
	}

	st := s.ReadStatus()
	if st == nil {
		t.Fatal("ReadStatus returned nil for a valid document")
	}
	if !st.Running() {
		t.Error("Running() = false, want true")
	}
	if !st.Healthy() {
		t.Error("Healthy() = false, want true")
	}
	if st.PID != 4242 {
		t.Errorf("PID = %d, want 4242", st.PID)
	}
	if st.Stats.TotalFrames != 90210 {
		t.Errorf("TotalFrames = %d, want 90210", st.Stats.TotalFrames)
	}
	if st.Stats.CurrentTemperatureC == nil || *st.Stats.CurrentTemperatureC != 41.5 {
		t.Errorf("CurrentTemperatureC = %v, want 41.5", st.Stats.CurrentTemperatureC)
	}
	if st.Stats.AverageTemperatureC != nil {
		t.Errorf("AverageTemperatureC = %v, want nil when absent", st.Stats.AverageTemperatureC)
	}
}

func TestReadStatus_MissingWarns(t *testing.T) {
	var buf strings.Builder
	s, _ := newTestStore(t, &buf)

	if st := s.ReadStatus(); st != nil {
		t.Fatalf("ReadStatus = %+v, want nil for a missing file", st)
	}
	if !strings.Contains(buf.String(), "warn:") {
		t.Errorf("expected a warning diagnostic, got %q", buf.String())
	}
}

func TestReadStatus_MalformedErrors(t *testing.T) {
	var buf strings.Builder
	s, _ := newTestStore(t, &buf)
	if err := os.WriteFile(s.StatusPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if st := s.ReadStatus(); st != nil {
		t.Fatalf("ReadStatus = %+v, want nil for a malformed file", st)
	}
	if !strings.Contains(buf.String(), "error:") {
		t.Errorf("expected an error diagnostic, got %q", buf.String())
	}
}

func TestReadStatus_ShapeValidation(t *testing.T) {
	// Parses as JSON but lacks the fields the daemon always writes.
	var buf strings.Builder
	s, _ := newTestStore(t, &buf)
	if err := os.WriteFile(s.StatusPath, []byte(`{"pid": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if st := s.ReadStatus(); st != nil {
		t.Fatalf("ReadStatus = %+v, want nil for a shapeless document", st)
	}
	if !strings.Contains(buf.String(), "error:") {
		t.Errorf("expected an error diagnostic, got %q", buf.String())
	}
}

func TestHealthy_RequiresBothFlags(t *testing.T) {
	degraded := &Status{State: "running", Health: Health{Status: "degraded"}}
	if degraded.Healthy() {
		t.Error("running+degraded reported healthy")
	}
	stopped := &Status{State: "stopped", Health: Health{Status: "healthy"}}
	if stopped.Healthy() {
		t.Error("stopped+healthy reported healthy")
	}
	var absent *Status
	if absent.Healthy() || absent.Running() {
		t.Error("nil status reported running or healthy")
	}
}

func TestReadConfig_PreservesUnknownKeys(t *testing.T) {
	s, _ := newTestStore(t, nil)
	doc := `{"camera": {"rgb_fps": 30}, "experimental": {"flag": true}}`
	if err := os.WriteFile(s.ConfigPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := s.ReadConfig()
	if cfg == nil {
		t.Fatal("ReadConfig returned nil for a valid document")
	}
	if _, ok := cfg["experimental"]; !ok {
		t.Error("unknown top-level key dropped by ReadConfig")
	}
}

func TestReadIMUSample(t *testing.T) {
	s, dir := newTestStore(t, nil)

	good := filepath.Join(dir, "imu_001.json")
	body := `{"timestamp": "20260830_100000_000001", "sequence_num": 7,
		"accelerometer": {"x": 0.1, "y": 0.2, "z": 9.8}}`
	if err := os.WriteFile(good, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	sample := s.ReadIMUSample(good)
	if sample == nil {
		t.Fatal("ReadIMUSample returned nil for a valid sample")
	}
	if sample.SequenceNum != 7 {
		t.Errorf("SequenceNum = %d, want 7", sample.SequenceNum)
	}
	if sample.Accelerometer == nil || sample.Accelerometer.Z != 9.8 {
		t.Errorf("Accelerometer = %+v, want z=9.8", sample.Accelerometer)
	}
	if sample.Gyroscope != nil || sample.Magnetometer != nil || sample.Rotation != nil {
		t.Error("absent sensor blocks should decode as nil")
	}

	bad := filepath.Join(dir, "imu_002.json")
	if err := os.WriteFile(bad, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.ReadIMUSample(bad); got != nil {
		t.Errorf("ReadIMUSample = %+v for garbage, want nil", got)
	}
	if got := s.ReadIMUSample(filepath.Join(dir, "imu_nope.json")); got != nil {
		t.Errorf("ReadIMUSample = %+v for missing file, want nil", got)
	}
}
