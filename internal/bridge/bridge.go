// Package bridge wires the telemetry pollers to an HTTP and WebSocket
// surface. oakmond runs one App: it polls the camera daemon's status file
// and frame directories, broadcasts every emission to connected
// subscribers, optionally archives status history to SQLite, and
// optionally republishes events to an MQTT broker. The camera daemon
// itself is never touched beyond its files.
package bridge

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/large-farva/oakmon/internal/archive"
	"github.com/large-farva/oakmon/internal/artifacts"
	"github.com/large-farva/oakmon/internal/config"
	"github.com/large-farva/oakmon/internal/daemon"
	"github.com/large-farva/oakmon/internal/export"
	"github.com/large-farva/oakmon/internal/imu"
	"github.com/large-farva/oakmon/internal/logtail"
	"github.com/large-farva/oakmon/internal/poll"
	"github.com/large-farva/oakmon/internal/ws"
)

// Options holds everything the App needs from the caller.
type Options struct {
	Logger *log.Logger
	Cfg    config.Config
	Bind   string
}

// App is the oakmond process: HTTP server, WebSocket hub, pollers, and
// the optional archive and MQTT sinks.
type App struct {
	log    *log.Logger
	cfg    config.Config
	bind   string
	server *http.Server

	startedAt time.Time

	hub      *ws.Hub
	store    *daemon.Store
	sel      *artifacts.Selector
	analyzer *imu.Analyzer
	logs     *logtail.Source
	exporter *export.Exporter

	hist *archive.DB // nil when archiving is disabled
	mq   mqtt.Client // nil when MQTT is disabled
}

// New builds an App and its telemetry sources. Call Run to start serving.
func New(opts Options) *App {
	d := opts.Cfg.Daemon
	store := daemon.NewStore(d.StatusPath, d.ConfigPath, opts.Logger)
	sel := artifacts.NewSelector(opts.Logger)
	analyzer := imu.NewAnalyzer(d.IMUDir(), sel, store, opts.Logger)
	logs := logtail.NewSource(d.LogPath, opts.Logger)

	return &App{
		log:       opts.Logger,
		cfg:       opts.Cfg,
		bind:      opts.Bind,
		startedAt: time.Now(),
		hub:       ws.NewHub(),
		store:     store,
		sel:       sel,
		analyzer:  analyzer,
		logs:      logs,
		exporter:  export.NewExporter(store, sel, analyzer, logs, d.OutputDir),
	}
}

// Run starts the HTTP server, the WebSocket hub, the pollers, and the
// optional sinks. It blocks until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	bind := a.bind
	if bind == "" && a.cfg.Server.Bind != "" {
		bind = a.cfg.Server.Bind
	}
	if bind == "" {
		bind = "0.0.0.0:8090"
	}

	if a.cfg.Archive.Enabled {
		db, err := archive.Open(a.cfg.Archive.Path, a.cfg.Archive.MaxRows)
		if err != nil {
			return err
		}
		a.hist = db
		defer a.hist.Close()
		a.log.Printf("archiving status history to %s", a.cfg.Archive.Path)
	}

	if a.cfg.MQTT.Enabled {
		if err := a.connectMQTT(); err != nil {
			return err
		}
		defer a.mq.Disconnect(250)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.HandleFunc("/api/imu", a.handleIMU)
	mux.HandleFunc("/api/analysis", a.handleAnalysis)
	mux.HandleFunc("/api/frames", a.handleFrames)
	mux.HandleFunc("/api/logs", a.handleLogs)
	mux.HandleFunc("/api/export", a.handleExport)
	mux.HandleFunc("/api/history", a.handleHistory)
	mux.Handle("/ws", a.hub.Handler())

	a.server = &http.Server{
		Addr:              bind,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	a.log.Printf("listening on http://%s", bind)

	go a.hub.Run(ctx)
	go a.heartbeatLoop(ctx)
	a.startPollers(ctx)

	go func() {
		<-ctx.Done()
		a.log.Printf("shutdown requested")
		_ = a.server.Shutdown(context.Background())
	}()

	return a.server.Serve(ln)
}

// startPollers launches the status poller and one frame poller per class.
// Each poller owns its goroutine pair: one running the ticker loop, one
// draining emissions into the sinks.
func (a *App) startPollers(ctx context.Context) {
	statusInterval := time.Duration(a.cfg.Poll.StatusIntervalSeconds * float64(time.Second))
	sp, err := poll.NewStatusPoller(a.store, statusInterval)
	if err != nil {
		// Config validation guarantees a positive interval; this is a
		// programming error, not a runtime condition.
		a.log.Fatalf("status poller: %v", err)
	}

	updates := make(chan poll.StatusUpdate, 8)
	go sp.Run(ctx, updates)
	go a.consumeStatus(ctx, updates)

	frameInterval := time.Duration(a.cfg.Poll.FrameIntervalMillis) * time.Millisecond
	for _, class := range export.FrameClasses {
		fp, err := poll.NewFramePoller(a.sel, a.cfg.Daemon.OutputDir, class, frameInterval)
		if err != nil {
			a.log.Fatalf("frame poller %s: %v", class, err)
		}
		events := make(chan poll.FrameEvent, 8)
		go fp.Run(ctx, events)
		go a.consumeFrames(ctx, events)
	}
}

// consumeStatus fans each status emission out to the hub, the history
// archive, and MQTT.
func (a *App) consumeStatus(ctx context.Context, updates <-chan poll.StatusUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			at := u.At.UTC().Format(time.RFC3339Nano)
			ev := map[string]any{
				"type":    "status",
				"ts":      at,
				"present": u.Status != nil,
				"status":  u.Status,
			}
			a.hub.BroadcastJSON(ev)
			a.publishMQTT("status", ev, true)

			if a.hist != nil {
				if err := a.hist.Record(at, u.Status); err != nil {
					a.log.Printf("error: %v", err)
				}
			}
		}
	}
}

// consumeFrames broadcasts frame transitions. No-change cycles are
// dropped here: remote subscribers only care about new frames, and the
// short frame interval would otherwise flood the hub.
func (a *App) consumeFrames(ctx context.Context, events <-chan poll.FrameEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !ev.Changed {
				continue
			}
			msg := map[string]any{
				"type":  "frame",
				"ts":    ev.At.UTC().Format(time.RFC3339Nano),
				"class": ev.Class,
				"path":  ev.Path,
			}
			a.hub.BroadcastJSON(msg)
			a.publishMQTT("frame/"+ev.Class, msg, false)
		}
	}
}

// heartbeatLoop sends a periodic heartbeat event so subscribers can detect
// connectivity and track bridge uptime without polling.
func (a *App) heartbeatLoop(ctx context.Context) {
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.hub.BroadcastJSON(map[string]any{
				"type":           "heartbeat",
				"ts":             time.Now().UTC().Format(time.RFC3339Nano),
				"uptime_seconds": int64(time.Since(a.startedAt).Seconds()),
				"clients":        a.hub.Count(),
			})
		}
	}
}
