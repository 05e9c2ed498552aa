// Oakmond is the telemetry bridge for the OAK-D camera daemon.
//
// It polls the daemon's status and frame artifacts, serves them over an
// HTTP API and a WebSocket event stream, and optionally archives status
// history to SQLite and republishes events over MQTT. Shutdown is handled
// gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/large-farva/oakmon/internal/bridge"
	"github.com/large-farva/oakmon/internal/config"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "/etc/oakmon/oakmon.toml", "Path to config TOML")
		bind       = pflag.String("bind", "", "HTTP bind address (overrides config)")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("config load failed: %v", err)
	}

	logger := log.New(os.Stdout, "oakmond ", log.LstdFlags|log.Lmicroseconds)
	if os.IsNotExist(err) {
		logger.Printf("warn: %s not found, running on defaults", *configPath)
	}

	addr := cfg.Server.Bind
	if *bind != "" {
		addr = *bind
	}

	a := bridge.New(bridge.Options{
		Logger: logger,
		Cfg:    cfg,
		Bind:   addr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("oakmond failed: %v", err)
	}

	// Brief pause so in-flight log writes can flush before exit.
	time.Sleep(50 * time.Millisecond)
}
