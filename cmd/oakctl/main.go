// Oakctl is the command-line client for the OAK-D camera daemon's
// telemetry. Most commands read the daemon's status, config, and artifact
// files directly from disk; watch and history talk to a running oakmond
// bridge over HTTP and WebSocket.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/large-farva/oakmon/internal/config"
	"github.com/large-farva/oakmon/internal/ctl"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "/etc/oakmon/oakmon.toml", "Path to oakmon config TOML")
		host       = pflag.StringP("host", "H", "http://127.0.0.1:8090", "Oakmond bridge URL (for watch and history)")
		jsonOut    = pflag.Bool("json", false, "Output raw JSON instead of formatted text")
		filter     = pflag.StringSlice("filter", nil, "Event types to show in watch (e.g. --filter status,frame)")
	)

	// Stop parsing global flags at the first non-flag argument (the command
	// name), so subcommand-specific flags like --count are not rejected.
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if pflag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cmd := pflag.Arg(0)
	subArgs := pflag.Args()[1:]

	cfg, err := config.Load(*configPath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "oakctl ", 0)
	client := ctl.NewClient(cfg, logger)

	switch cmd {
	// ── Query commands ────────────────────────────────────────────
	case "status":
		err = client.Status(*jsonOut)

	case "health":
		err = client.Health(*jsonOut)

	case "config":
		err = client.ConfigShow(*jsonOut)

	case "imu":
		count := 10
		imuFlags := pflag.NewFlagSet("imu", pflag.ContinueOnError)
		imuFlags.IntVar(&count, "count", count, "Number of recent samples to show")
		_ = imuFlags.Parse(subArgs)
		err = client.IMU(count, *jsonOut)

	case "analyze":
		samples := 100
		anFlags := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
		anFlags.IntVar(&samples, "samples", samples, "Sample window size")
		_ = anFlags.Parse(subArgs)
		err = client.Analyze(samples, *jsonOut)

	case "frames":
		count := 5
		frFlags := pflag.NewFlagSet("frames", pflag.ContinueOnError)
		frFlags.IntVar(&count, "count", count, "Frames to list per class")
		_ = frFlags.Parse(subArgs)
		err = client.Frames(count, *jsonOut)

	case "logs":
		lines := 20
		logFlags := pflag.NewFlagSet("logs", pflag.ContinueOnError)
		logFlags.IntVar(&lines, "lines", lines, "Number of log lines to show")
		_ = logFlags.Parse(subArgs)
		err = client.Logs(lines, *jsonOut)

	case "history":
		limit := 50
		histFlags := pflag.NewFlagSet("history", pflag.ContinueOnError)
		histFlags.IntVar(&limit, "limit", limit, "Number of archived observations to show")
		_ = histFlags.Parse(subArgs)
		err = ctl.History(*host, limit, *jsonOut)

	// ── Control commands ──────────────────────────────────────────
	case "config-set":
		if len(subArgs) < 1 {
			err = fmt.Errorf("config-set requires at least one key.path=value argument")
			break
		}
		err = client.ConfigSet(subArgs, *jsonOut)

	case "set-fps":
		fps := 0
		fpsFlags := pflag.NewFlagSet("set-fps", pflag.ContinueOnError)
		fpsFlags.IntVar(&fps, "fps", 0, "Target frames per second")
		_ = fpsFlags.Parse(subArgs)
		if fps == 0 && fpsFlags.NArg() > 0 {
			_, err = fmt.Sscanf(fpsFlags.Arg(0), "%d", &fps)
		}
		if err == nil {
			err = client.SetFPS(fps, *jsonOut)
		}

	case "export":
		var path, format string
		expFlags := pflag.NewFlagSet("export", pflag.ContinueOnError)
		expFlags.StringVarP(&path, "output", "o", "", "Output file path (default: timestamped name)")
		expFlags.StringVar(&format, "format", "json", "Export format: json or yaml")
		_ = expFlags.Parse(subArgs)
		if path == "" && expFlags.NArg() > 0 {
			path = expFlags.Arg(0)
		}
		err = client.Export(path, format, *jsonOut)

	// ── Live streaming ────────────────────────────────────────────
	case "monitor":
		err = client.Monitor(*jsonOut)

	case "stream":
		class := ""
		if len(subArgs) > 0 {
			class = subArgs[0]
		}
		err = client.Stream(class, *jsonOut)

	case "watch":
		err = ctl.Watch(*host, ctl.WatchOptions{
			Filter: *filter,
			JSON:   *jsonOut,
		})

	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`
  oakctl — OAK-D camera daemon telemetry CLI

  USAGE
    oakctl [flags] <command> [command-flags]

  COMMANDS (query)
    status          Show daemon state, statistics, and health
    health          Show the daemon health verdict and issues
    config          Show the daemon configuration
    imu             Show the latest IMU samples
    analyze         Compute statistics over a window of IMU samples
    frames          List the newest frame files per class
    logs            Show recent daemon log lines
    history         Show archived status observations (needs oakmond)

  COMMANDS (control)
    config-set      Update daemon config values (key.path=value ...)
    set-fps         Set the camera frame rate
    export          Write an aggregated telemetry snapshot to a file

  COMMANDS (live)
    monitor         Poll and print the daemon status (Ctrl-C to stop)
    stream [class]  Print frame transitions as they happen (Ctrl-C to stop)
    watch           Stream live events from oakmond (Ctrl-C to stop)

  GLOBAL FLAGS
    -c, --config PATH   Oakmon config TOML (default: /etc/oakmon/oakmon.toml)
    -H, --host URL      Oakmond base URL (default: http://127.0.0.1:8090)
        --json          Output raw JSON instead of formatted text
        --filter TYPE   Event types to show in watch (comma-separated)

  COMMAND FLAGS
    imu:
        --count N           Number of recent samples to show (default: 10)

    analyze:
        --samples N         Sample window size (default: 100)

    frames:
        --count N           Frames to list per class (default: 5)

    logs:
        --lines N           Number of log lines to show (default: 20)

    history:
        --limit N           Archived observations to show (default: 50)

    export:
        -o, --output PATH   Output file path (default: timestamped name)
        --format FMT        json or yaml (default: json)

  EXAMPLES
    oakctl status
    oakctl --json status
    oakctl imu --count 5
    oakctl analyze --samples 200
    oakctl frames
    oakctl logs --lines 50
    oakctl config-set camera.fps=15 ai.confidence_threshold=0.6
    oakctl set-fps 30
    oakctl export --format yaml
    oakctl monitor
    oakctl stream
    oakctl --host http://192.168.8.1:8090 watch --filter status,frame
    oakctl history --limit 20

`)
}
