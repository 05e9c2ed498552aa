// Package poll turns the daemon's periodically-rewritten files into live
// emission streams. Each poller is a clock-driven reader: it re-reads its
// source on a fixed interval and pushes the result to a channel until the
// context is cancelled. Read failures inside a cycle degrade to an absent
// or no-change emission; they never terminate the poller.
package poll

import (
	"errors"
	"time"

	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/daemon"
)

// StatusReader abstracts the status document read so tests can swap in a
// fake without touching the filesystem.
type StatusReader interface {
	ReadStatus() *daemon.Status
}

// Lister abstracts artifact selection for the frame poller.
type Lister interface {
	Latest(dir, pattern string, count int) []artifacts.Reference
}

// StatusUpdate is one status poll emission. Status is nil when the
// document was missing or malformed at poll time, never a cached copy of
// an earlier read.
type StatusUpdate struct {
	At     time.Time
	Status *daemon.Status
}

// StatusPoller re-reads the status document on a fixed interval.
type StatusPoller struct {
	reader   StatusReader
	interval time.Duration
}

// NewStatusPoller creates a status poller with an immutable interval.
func NewStatusPoller(reader StatusReader, interval time.Duration) (*StatusPoller, error) {
	if reader == nil {
		return nil, errors.New("poll: status reader required")
	}
	if interval <= 0 {
		return nil, errors.New("poll: interval must be > 0")
	}
	return &StatusPoller{reader: reader, interval: interval}, nil
}

// PollOnce performs exactly one poll cycle.
func (p *StatusPoller) PollOnce() StatusUpdate {
	return StatusUpdate{
		At:     time.Now(),
		Status: p.reader.ReadStatus(),
	}
}

// FrameEvent is one frame poll emission. Changed is true only when the
// newest matching path differs from the one last emitted as changed; Path
// carries the current newest path either way, and is empty when the
// directory holds no matching frames at all. That distinction lets a
// consumer tell "polled, nothing new" from "daemon not saving frames".
type FrameEvent struct {
	At      time.Time
	Class   string
	Path    string
	Changed bool
}

// FramePoller watches one frame class for newest-file transitions.
type FramePoller struct {
	lister   Lister
	dir      string
	class    string
	pattern  string
	interval time.Duration

	last string // newest path seen on a previous cycle
}

// NewFramePoller creates a frame-change poller for one frame class
// (e.g. "rgb" or "depth"). Frames are matched as {class}_*.jpg.
func NewFramePoller(lister Lister, dir, class string, interval time.Duration) (*FramePoller, error) {
	if lister == nil {
		return nil, errors.New("poll: lister required")
	}
	if class == "" {
		return nil, errors.New("poll: frame class required")
	}
	if interval <= 0 {
		return nil, errors.New("poll: interval must be > 0")
	}
	return &FramePoller{
		lister:   lister,
		dir:      dir,
		class:    class,
		pattern:  class + "_*.jpg",
		interval: interval,
	}, nil
}

// PollOnce performs one poll cycle, de-duplicating by path identity. An
// empty listing does not reset the de-dup state: if the same newest frame
// reappears later it is still not news.
func (p *FramePoller) PollOnce() FrameEvent {
	ev := FrameEvent{At: time.Now(), Class: p.class}

	refs := p.lister.Latest(p.dir, p.pattern, 1)
	if len(refs) == 0 {
		return ev
	}

	ev.Path = refs[0].Path
	if ev.Path != p.last {
		ev.Changed = true
		p.last = ev.Path
	}
	return ev
}
