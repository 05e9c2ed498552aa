package imu

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/daemon"
)

func newTestAnalyzer(t *testing.T) (*Analyzer, string) {
	t.Helper()
	dir := t.TempDir()
	logger := log.New(io.Discard, "", 0)
	store := daemon.NewStore(
		filepath.Join(dir, "status.json"),
		filepath.Join(dir, "config.json"),
		logger,
	)
	return NewAnalyzer(dir, artifacts.NewSelector(logger), store, logger), dir
}

// writeSample stores one sample file with the given sequence number and
// modification time. Timestamp strings sort with sequence number so test
// assertions can read them directly.
func writeSample(t *testing.T, dir string, seq int64, mtime time.Time, sample daemon.IMUSample) {
	t.Helper()
	sample.Timestamp = fmt.Sprintf("ts-%03d", seq)
	sample.SequenceNum = seq
	b, err := json.Marshal(sample)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, fmt.Sprintf("imu_%03d.json", seq))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_ChronologicalOrder(t *testing.T) {
	a, dir := newTestAnalyzer(t)
	base := time.Now().Add(-time.Hour)

	// Written out of sequence order on purpose: modtime drives selection.
	writeSample(t, dir, 5, base.Add(3*time.Minute), daemon.IMUSample{})
	writeSample(t, dir, 3, base.Add(1*time.Minute), daemon.IMUSample{})
	writeSample(t, dir, 4, base.Add(2*time.Minute), daemon.IMUSample{})

	samples := a.Load(10)
	if len(samples) != 3 {
		t.Fatalf("loaded %d samples, want 3", len(samples))
	}
	want := []int64{3, 4, 5}
	for i, s := range samples {
		if s.SequenceNum != want[i] {
			t.Errorf("samples[%d].SequenceNum = %d, want %d (chronological order)", i, s.SequenceNum, want[i])
		}
	}
}

func TestLoad_WindowTakesNewest(t *testing.T) {
	a, dir := newTestAnalyzer(t)
	base := time.Now().Add(-time.Hour)
	for seq := int64(1); seq <= 5; seq++ {
		writeSample(t, dir, seq, base.Add(time.Duration(seq)*time.Minute), daemon.IMUSample{})
	}

	samples := a.Load(2)
	if len(samples) != 2 {
		t.Fatalf("loaded %d samples, want 2", len(samples))
	}
	// Newest two, presented oldest first.
	if samples[0].SequenceNum != 4 || samples[1].SequenceNum != 5 {
		t.Errorf("window = [%d %d], want [4 5]", samples[0].SequenceNum, samples[1].SequenceNum)
	}
}

func TestLoad_SkipsMalformedFiles(t *testing.T) {
	a, dir := newTestAnalyzer(t)
	base := time.Now().Add(-time.Hour)
	writeSample(t, dir, 1, base, daemon.IMUSample{})
	bad := filepath.Join(dir, "imu_zzz.json")
	if err := os.WriteFile(bad, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(bad, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	samples := a.Load(10)
	if len(samples) != 1 {
		t.Fatalf("loaded %d samples, want 1 (bad file skipped, not fatal)", len(samples))
	}
}

func TestAnalyze_NoSamplesReturnsNil(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	if an := a.Analyze(100); an != nil {
		t.Fatalf("Analyze = %+v with no samples on disk, want nil", an)
	}
}

func TestAnalyze_Statistics(t *testing.T) {
	a, dir := newTestAnalyzer(t)
	base := time.Now().Add(-time.Hour)

	writeSample(t, dir, 1, base, daemon.IMUSample{
		Accelerometer: &daemon.Vector3{X: 1, Y: 0, Z: 9.8},
		Gyroscope:     &daemon.Vector3{X: 0.1, Y: 0.1, Z: 0.1},
	})
	writeSample(t, dir, 2, base.Add(time.Minute), daemon.IMUSample{
		Accelerometer: &daemon.Vector3{X: 3, Y: 0, Z: 9.8},
		Gyroscope:     &daemon.Vector3{X: 0.1, Y: 0.1, Z: 0.1},
	})

	an := a.Analyze(10)
	if an == nil {
		t.Fatal("Analyze returned nil")
	}
	if an.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", an.SampleCount)
	}
	if got := an.Accelerometer.X.Values; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("accel X values = %v, want [1 3] in chronological order", got)
	}
	if an.Accelerometer.X.Mean != 2 {
		t.Errorf("accel X mean = %v, want 2", an.Accelerometer.X.Mean)
	}
	if math.Abs(an.Accelerometer.X.Std-1) > 1e-9 {
		t.Errorf("accel X std = %v, want 1 (population)", an.Accelerometer.X.Std)
	}
	if an.Gyroscope.Z.Std != 0 {
		t.Errorf("gyro Z std = %v, want 0 for constant input", an.Gyroscope.Z.Std)
	}
	if an.Magnetometer != nil {
		t.Error("magnetometer block present although no sample carried one")
	}
}

func TestAnalyze_PartialMagnetometer(t *testing.T) {
	a, dir := newTestAnalyzer(t)
	base := time.Now().Add(-time.Hour)

	writeSample(t, dir, 1, base, daemon.IMUSample{
		Accelerometer: &daemon.Vector3{X: 1},
	})
	writeSample(t, dir, 2, base.Add(time.Minute), daemon.IMUSample{
		Accelerometer: &daemon.Vector3{X: 2},
		Magnetometer:  &daemon.Vector3{X: 25, Y: -3, Z: 40},
	})

	an := a.Analyze(10)
	if an == nil {
		t.Fatal("Analyze returned nil")
	}
	if an.Magnetometer == nil {
		t.Fatal("magnetometer block absent although one sample carried it")
	}
	if got := an.Magnetometer.X.Values; len(got) != 1 || got[0] != 25 {
		t.Errorf("mag X values = %v, want [25] (only supplying samples)", got)
	}
	if got := an.Accelerometer.X.Values; len(got) != 2 {
		t.Errorf("accel X values = %v, want both samples", got)
	}
	if len(an.Timestamps) != 2 {
		t.Errorf("timestamps = %v, want both samples", an.Timestamps)
	}
}
