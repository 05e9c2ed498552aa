package bridge

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/large-farva/oakmon/internal/archive"
	"github.com/large-farva/oakmon/internal/export"
)

func (a *App) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleStatus reports the bridge's own state plus a fresh read of the
// daemon's status document. "daemon" is null when the document is absent;
// clients must not take bridge liveness as daemon liveness.
func (a *App) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"name":            "oakmon",
		"version":         Version,
		"uptime_seconds":  int64(time.Since(a.startedAt).Seconds()),
		"clients":         a.hub.Count(),
		"archive_enabled": a.hist != nil,
		"mqtt_enabled":    a.mq != nil,
		"daemon":          a.store.ReadStatus(),
		"output_disk":     diskUsage(a.cfg.Daemon.OutputDir),
	}
	writeJSON(w, resp)
}

// handleVersion reports build information for the bridge binary.
func (a *App) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"name":       "oakmond",
		"version":    Version,
		"go_version": GoVersion,
		"built_at":   BuiltAt,
	})
}

// handleConfig serves the daemon's configuration document and accepts
// partial updates to merge into it.
func (a *App) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{"config": a.store.ReadConfig()})

	case http.MethodPost:
		var partial map[string]any
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			jsonError(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(partial) == 0 {
			jsonError(w, "empty update", http.StatusBadRequest)
			return
		}
		if ok := a.store.UpdateConfig(partial); !ok {
			jsonError(w, "config update failed", http.StatusConflict)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "message": "config updated; signal the daemon to reload"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *App) handleIMU(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", 10)
	writeJSON(w, map[string]any{"samples": a.analyzer.Load(count)})
}

// handleAnalysis serves per-axis statistics over a recent sample window.
// "analysis" is null when no samples are available.
func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	samples := queryInt(r, "samples", export.IMUSampleWindow)
	writeJSON(w, map[string]any{"analysis": a.analyzer.Analyze(samples)})
}

func (a *App) handleFrames(w http.ResponseWriter, r *http.Request) {
	class := r.URL.Query().Get("type")
	if class == "" {
		class = "rgb"
	}
	count := queryInt(r, "count", export.FrameWindow)
	refs := a.sel.Latest(a.cfg.Daemon.OutputDir, class+"_*.jpg", count)
	writeJSON(w, map[string]any{"class": class, "frames": refs})
}

func (a *App) handleLogs(w http.ResponseWriter, r *http.Request) {
	lines := queryInt(r, "lines", 50)
	writeJSON(w, map[string]any{"lines": a.logs.Tail(lines)})
}

func (a *App) handleExport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, a.exporter.Snapshot())
}

func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	if a.hist == nil {
		jsonError(w, "history archive disabled", http.StatusConflict)
		return
	}
	limit := queryInt(r, "limit", 50)
	rows, err := a.hist.Recent(limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []archive.Row{}
	}
	writeJSON(w, map[string]any{"history": rows})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": msg})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
