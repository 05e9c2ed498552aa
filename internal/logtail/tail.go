// Package logtail reads the most recent lines of the daemon's log file.
// The log is an opaque append-only text stream; no parsing happens here.
package logtail

import (
	"log"
	"os"
	"strings"
)

// Source reads the tail of one log file.
type Source struct {
	Path string

	log *log.Logger
}

// NewSource returns a Source over path, reporting diagnostics on logger.
func NewSource(path string, logger *log.Logger) *Source {
	return &Source{Path: path, log: logger}
}

// Tail returns the last n lines of the log file. A missing file yields an
// empty result plus a warning; n <= 0 yields an empty result. The file's
// trailing newline does not count as an empty final line.
func (s *Source) Tail(n int) []string {
	if n <= 0 {
		return nil
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Printf("warn: log file %s not found", s.Path)
		} else {
			s.log.Printf("error: reading log file %s: %v", s.Path, err)
		}
		return nil
	}

	text := strings.TrimRight(string(b), "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
