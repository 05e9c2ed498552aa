// Package config handles loading, defaulting, and validation of the oakmon
// TOML configuration file. Every section maps to a typed struct so the rest
// of the codebase gets strong typing without manual key lookups.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Daemon  DaemonConfig  `toml:"daemon"  json:"daemon"`
	Poll    PollConfig    `toml:"poll"    json:"poll"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
	Server  ServerConfig  `toml:"server"  json:"server"`
	Archive ArchiveConfig `toml:"archive" json:"archive"`
	MQTT    MQTTConfig    `toml:"mqtt"    json:"mqtt"`
}

// DaemonConfig locates the camera daemon's on-disk documents. The paths
// are owned by the daemon's installation; oakmon only consumes them.
type DaemonConfig struct {
	StatusPath string `toml:"status_path" json:"status_path"`
	ConfigPath string `toml:"config_path" json:"config_path"`
	OutputDir  string `toml:"output_dir"  json:"output_dir"`
	LogPath    string `toml:"log_path"    json:"log_path"`
}

// IMUDir returns the IMU artifact subdirectory under the output directory.
func (d DaemonConfig) IMUDir() string {
	return filepath.Join(d.OutputDir, "imu")
}

type PollConfig struct {
	StatusIntervalSeconds float64 `toml:"status_interval_seconds" json:"status_interval_seconds"`
	FrameIntervalMillis   int     `toml:"frame_interval_ms"       json:"frame_interval_ms"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

type ServerConfig struct {
	Bind string `toml:"bind" json:"bind"`
}

// ArchiveConfig controls the oakmond status-history database.
type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"  json:"enabled"`
	Path    string `toml:"path"     json:"path"`
	MaxRows int    `toml:"max_rows" json:"max_rows"`
}

// MQTTConfig controls optional republishing of telemetry events to a
// broker. Disabled by default; oakmond works without any broker present.
type MQTTConfig struct {
	Enabled     bool   `toml:"enabled"      json:"enabled"`
	Broker      string `toml:"broker"       json:"broker"`
	ClientID    string `toml:"client_id"    json:"client_id"`
	TopicPrefix string `toml:"topic_prefix" json:"topic_prefix"`
}

// Default returns a Config populated with sane defaults. Values here are
// used whenever the TOML file omits a field, and entirely when no config
// file exists: the daemon's stock install paths work out of the box.
func Default() Config {
	return Config{
		Daemon: DaemonConfig{
			StatusPath: "/var/run/depthai-daemon/status.json",
			ConfigPath: "/etc/depthai-daemon/config.json",
			OutputDir:  "/tmp/depthai-frames",
			LogPath:    "/var/log/depthai-daemon/daemon.log",
		},
		Poll: PollConfig{
			StatusIntervalSeconds: 2,
			FrameIntervalMillis:   200,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Bind: "0.0.0.0:8090",
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Path:    "/var/lib/oakmon/history.db",
			MaxRows: 10000,
		},
		MQTT: MQTTConfig{
			Enabled:     false,
			Broker:      "tcp://localhost:1883",
			ClientID:    "oakmond",
			TopicPrefix: "oakmon",
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. An error is returned if the file can't be read,
// parsed, or if any constraint is violated. Callers that treat a missing
// file as "run on defaults" check os.IsNotExist on the returned error.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Daemon.StatusPath == "" {
		return errors.New("daemon.status_path must not be empty")
	}
	if cfg.Daemon.ConfigPath == "" {
		return errors.New("daemon.config_path must not be empty")
	}
	if cfg.Daemon.OutputDir == "" {
		return errors.New("daemon.output_dir must not be empty")
	}
	if cfg.Poll.StatusIntervalSeconds <= 0 {
		return errors.New("poll.status_interval_seconds must be > 0")
	}
	if cfg.Poll.FrameIntervalMillis <= 0 {
		return errors.New("poll.frame_interval_ms must be > 0")
	}
	if cfg.Archive.Enabled && cfg.Archive.Path == "" {
		return errors.New("archive.path must not be empty when archive.enabled")
	}
	if cfg.Archive.MaxRows < 0 {
		return errors.New("archive.max_rows must be >= 0")
	}
	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return errors.New("mqtt.broker must not be empty when mqtt.enabled")
	}
	return nil
}
