package bridge

// Build-time variables set via -ldflags. For example:
//
//	go build -ldflags "-X github.com/large-farva/oakmon/internal/bridge.Version=v1.0.0"
var (
	Version   = "dev"
	GoVersion = "unknown"
	BuiltAt   = "unknown"
)
