// Package daemon reads and updates the on-disk documents written by the
// DepthAI camera daemon: the periodic status snapshot, the persisted
// configuration tree, and the per-sample IMU artifact files. The daemon
// itself runs as a separate service; this package only interprets whatever
// is currently on disk.
package daemon

// Status mirrors the JSON status document the daemon rewrites on its
// health-check interval. Absence of the file means the daemon is not
// running or has not produced its first snapshot yet.
type Status struct {
	Timestamp string `json:"timestamp"`
	State     string `json:"status"`
	PID       int    `json:"pid"`
	Stats     Stats  `json:"stats"`
	Health    Health `json:"health"`
}

// Stats carries the daemon's cumulative and instantaneous performance
// counters. Temperature fields are pointers: the device may not expose a
// temperature sensor at all.
type Stats struct {
	UptimeSeconds       float64  `json:"uptime_seconds"`
	UptimeFormatted     string   `json:"uptime_formatted"`
	TotalFrames         int64    `json:"total_frames"`
	ErrorCount          int64    `json:"error_count"`
	CurrentFPS          float64  `json:"current_fps"`
	AverageFPS          float64  `json:"average_fps"`
	IMUDataCount        int64    `json:"imu_data_count"`
	AverageTemperatureC *float64 `json:"average_temperature_c"`
	CurrentTemperatureC *float64 `json:"current_temperature_c"`
	LastFrameTime       string   `json:"last_frame_time"`
}

// Health is the daemon's own assessment of its condition. An empty Issues
// list means no known problems.
type Health struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// Running reports whether the daemon's process loop is alive.
func (s *Status) Running() bool {
	return s != nil && s.State == "running"
}

// Healthy reports whether the daemon is both running and self-reporting
// healthy. The two flags are independent in the status document (a daemon
// can be running but degraded), so a healthy verdict requires both.
func (s *Status) Healthy() bool {
	return s.Running() && s.Health.Status == "healthy"
}

// Vector3 is one 3-axis sensor reading.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is a unit quaternion from the IMU's rotation vector sensor.
type Rotation struct {
	I    float64 `json:"i"`
	J    float64 `json:"j"`
	K    float64 `json:"k"`
	Real float64 `json:"real"`
}

// IMUSample is one timestamped inertial reading, stored by the daemon as a
// single JSON file under the output directory's imu/ subdirectory. Sequence
// numbers are monotonic per producer but not guaranteed contiguous, and any
// subset of the sensor blocks may be absent.
type IMUSample struct {
	Timestamp     string    `json:"timestamp"`
	SequenceNum   int64     `json:"sequence_num"`
	Accelerometer *Vector3  `json:"accelerometer,omitempty"`
	Gyroscope     *Vector3  `json:"gyroscope,omitempty"`
	Magnetometer  *Vector3  `json:"magnetometer,omitempty"`
	Rotation      *Rotation `json:"rotation,omitempty"`
}
