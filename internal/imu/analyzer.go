// Package imu loads recent inertial samples from the daemon's artifact
// directory and computes per-axis statistics over the selected window.
package imu

import (
	"log"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/daemon"
	"github.com/large-farva/oakmon/internal/stats"
)

// SamplePattern matches the per-sample JSON files the daemon writes.
const SamplePattern = "imu_*.json"

// AxisSeries is the raw chronological value sequence for one sensor axis
// together with its summary statistics.
type AxisSeries struct {
	Values []float64 `json:"values"`
	Mean   float64   `json:"mean"`
	Std    float64   `json:"std"`
}

// SensorSeries groups the three axes of one sensor.
type SensorSeries struct {
	X AxisSeries `json:"x"`
	Y AxisSeries `json:"y"`
	Z AxisSeries `json:"z"`
}

// Analysis is the derived statistics over a window of recent IMU samples.
// It is recomputed from disk on every request and never cached. The
// magnetometer block is present only when at least one sample in the
// window carried magnetometer data.
type Analysis struct {
	SampleCount   int           `json:"sample_count"`
	Timestamps    []string      `json:"timestamps"`
	Accelerometer SensorSeries  `json:"accelerometer"`
	Gyroscope     SensorSeries  `json:"gyroscope"`
	Magnetometer  *SensorSeries `json:"magnetometer,omitempty"`
}

// Analyzer loads and analyzes IMU sample windows from one directory.
type Analyzer struct {
	dir   string
	sel   *artifacts.Selector
	store *daemon.Store
	log   *log.Logger
}

// NewAnalyzer returns an Analyzer over the given IMU artifact directory.
func NewAnalyzer(dir string, sel *artifacts.Selector, store *daemon.Store, logger *log.Logger) *Analyzer {
	return &Analyzer{dir: dir, sel: sel, store: store, log: logger}
}

// Load returns up to count of the most recent samples in chronological
// order (oldest of the window first). Selection walks the directory newest
// first; the result is reversed so per-axis sequences read oldest to
// newest. Malformed sample files are skipped with a diagnostic rather than
// aborting the window.
func (a *Analyzer) Load(count int) []daemon.IMUSample {
	refs := a.sel.Latest(a.dir, SamplePattern, count)

	var samples []daemon.IMUSample
	for _, ref := range refs {
		s := a.store.ReadIMUSample(ref.Path)
		if s == nil {
			a.log.Printf("warn: skipping unreadable imu sample %s", ref.Path)
			continue
		}
		samples = append(samples, *s)
	}

	// refs are newest-first; present the window oldest-first.
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
	return samples
}

// Analyze loads up to count recent samples and computes per-axis mean and
// population standard deviation for each sensor. It returns nil when no
// samples are available at all: "no data" is distinct from a window of
// zero readings.
func (a *Analyzer) Analyze(count int) *Analysis {
	samples := a.Load(count)
	if len(samples) == 0 {
		return nil
	}

	an := &Analysis{SampleCount: len(samples)}
	var accX, accY, accZ []float64
	var gyrX, gyrY, gyrZ []float64
	var magX, magY, magZ []float64

	for _, s := range samples {
		an.Timestamps = append(an.Timestamps, s.Timestamp)
		if s.Accelerometer != nil {
			accX = append(accX, s.Accelerometer.X)
			accY = append(accY, s.Accelerometer.Y)
			accZ = append(accZ, s.Accelerometer.Z)
		}
		if s.Gyroscope != nil {
			gyrX = append(gyrX, s.Gyroscope.X)
			gyrY = append(gyrY, s.Gyroscope.Y)
			gyrZ = append(gyrZ, s.Gyroscope.Z)
		}
		if s.Magnetometer != nil {
			magX = append(magX, s.Magnetometer.X)
			magY = append(magY, s.Magnetometer.Y)
			magZ = append(magZ, s.Magnetometer.Z)
		}
	}

	an.Accelerometer = series(accX, accY, accZ)
	an.Gyroscope = series(gyrX, gyrY, gyrZ)
	if len(magX) > 0 {
		mag := series(magX, magY, magZ)
		an.Magnetometer = &mag
	}
	return an
}

func series(x, y, z []float64) SensorSeries {
	return SensorSeries{
		X: axis(x),
		Y: axis(y),
		Z: axis(z),
	}
}

func axis(values []float64) AxisSeries {
	s := stats.Compute(values)
	return AxisSeries{Values: values, Mean: s.Mean, Std: s.Std}
}
