package daemon

import (
	"encoding/json"
	"os"
)

// UpdateConfig deep-merges partial onto the current configuration document
// and rewrites the file. It fails closed: when the current document cannot
// be read nothing is written, so a transiently-missing config file is never
// replaced by a bare fragment. The write is a single whole-document
// os.WriteFile (not write-to-temp-then-rename, matching the daemon's own
// persistence), so concurrent updates are last-writer-wins.
//
// The caller is responsible for signalling the daemon to reload (SIGHUP via
// the service manager).
func (s *Store) UpdateConfig(partial map[string]any) bool {
	current := s.ReadConfig()
	if current == nil {
		s.log.Printf("error: cannot update config: current document unreadable")
		return false
	}

	merged := DeepMerge(current, partial)

	b, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		s.log.Printf("error: encoding merged config: %v", err)
		return false
	}
	if err := os.WriteFile(s.ConfigPath, b, 0o644); err != nil {
		s.log.Printf("error: writing config file %s: %v", s.ConfigPath, err)
		return false
	}
	return true
}

// DeepMerge returns a new tree with update applied over base. Where both
// sides hold a nested object under the same key the merge recurses; any
// other value in update (scalar, array, or a key absent from base) replaces
// the base value wholesale. Neither input is mutated.
func DeepMerge(base, update map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range update {
		if subUpdate, ok := v.(map[string]any); ok {
			if subBase, ok := out[k].(map[string]any); ok {
				out[k] = DeepMerge(subBase, subUpdate)
				continue
			}
		}
		out[k] = v
	}
	return out
}
