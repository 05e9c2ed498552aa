package daemon

import (
	"encoding/json"
	"log"
	"os"
)

// Store reads the daemon's documents from their well-known paths. Absence
// of a document is an expected outcome, surfaced as a nil result plus a
// warning diagnostic, never as an error; a document that exists but fails
// to parse is a corruption signal and gets an error diagnostic instead.
type Store struct {
	StatusPath string
	ConfigPath string

	log *log.Logger
}

// NewStore returns a Store over the given document paths, reporting
// diagnostics on logger.
func NewStore(statusPath, configPath string, logger *log.Logger) *Store {
	return &Store{
		StatusPath: statusPath,
		ConfigPath: configPath,
		log:        logger,
	}
}

// ReadStatus loads the daemon's status document, or nil when it is missing
// or malformed. A document missing its required fields is treated as
// malformed: the daemon always writes timestamp, status, and health.
func (s *Store) ReadStatus() *Status {
	b, err := os.ReadFile(s.StatusPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Printf("warn: status file %s not found (is the daemon running?)", s.StatusPath)
		} else {
			s.log.Printf("error: reading status file %s: %v", s.StatusPath, err)
		}
		return nil
	}

	var st Status
	if err := json.Unmarshal(b, &st); err != nil {
		s.log.Printf("error: status file %s is malformed: %v", s.StatusPath, err)
		return nil
	}
	if st.Timestamp == "" || st.State == "" || st.Health.Status == "" {
		s.log.Printf("error: status file %s is missing required fields", s.StatusPath)
		return nil
	}
	return &st
}

// ReadConfig loads the daemon's configuration document as a raw tree, or
// nil when it is missing or malformed. The raw form matters: updates are
// merged into it, and keys this version of the client does not know about
// must survive a round trip.
func (s *Store) ReadConfig() map[string]any {
	b, err := os.ReadFile(s.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Printf("warn: config file %s not found", s.ConfigPath)
		} else {
			s.log.Printf("error: reading config file %s: %v", s.ConfigPath, err)
		}
		return nil
	}

	var cfg map[string]any
	if err := json.Unmarshal(b, &cfg); err != nil {
		s.log.Printf("error: config file %s is malformed: %v", s.ConfigPath, err)
		return nil
	}
	return cfg
}

// ReadIMUSample loads one IMU sample file, or nil when it is missing or
// malformed. Batch callers skip nil results rather than aborting.
func (s *Store) ReadIMUSample(path string) *IMUSample {
	b, err := os.ReadFile(path)
	if err != nil {
		s.log.Printf("warn: imu sample %s unreadable: %v", path, err)
		return nil
	}

	var sample IMUSample
	if err := json.Unmarshal(b, &sample); err != nil {
		s.log.Printf("error: imu sample %s is malformed: %v", path, err)
		return nil
	}
	if sample.Timestamp == "" {
		s.log.Printf("error: imu sample %s is missing its timestamp", path)
		return nil
	}
	return &sample
}
