// Package artifacts selects the most recent files produced by the camera
// daemon in its output directories. Frame images and IMU sample files are
// both located through the same glob-and-sort selection.
package artifacts

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Reference points at one artifact file on disk together with the metadata
// used for ordering and display. Pixel data is never loaded here.
type Reference struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Selector lists artifact files by recency. It holds no state between
// calls: the daemon may rotate or rewrite files at any moment, so every
// call rescans the directory from scratch.
type Selector struct {
	log *log.Logger
}

// NewSelector returns a Selector that reports diagnostics on logger.
func NewSelector(logger *log.Logger) *Selector {
	return &Selector{log: logger}
}

// Latest returns up to count references matching the shell-glob pattern in
// dir, newest modification time first. Ties are broken by filename so the
// order is stable. A missing directory is not an error: it means the
// producing feature (frame saving, IMU capture) is disabled upstream, so
// Latest logs a warning and returns an empty slice.
func (s *Selector) Latest(dir, pattern string, count int) []Reference {
	if count <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Printf("warn: artifact directory %s not found (feature disabled?)", dir)
		} else {
			s.log.Printf("error: reading artifact directory %s: %v", dir, err)
		}
		return nil
	}

	var refs []Reference
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			s.log.Printf("error: bad artifact pattern %q: %v", pattern, err)
			return nil
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// File vanished between ReadDir and Stat; skip it.
			continue
		}
		refs = append(refs, Reference{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].ModTime.Equal(refs[j].ModTime) {
			return refs[i].ModTime.After(refs[j].ModTime)
		}
		return refs[i].Path > refs[j].Path
	})

	if len(refs) > count {
		refs = refs[:count]
	}
	return refs
}
