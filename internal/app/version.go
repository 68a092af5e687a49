package app

import (
	"fmt"
	"runtime"
)

// Version, Commit and BuildTime are set via ldflags, for example
// -ldflags "-X github.com/heartmarshall/wordpractice/internal/app.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the one-line build description used in startup logs, the
// health endpoint and the version command.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", Version, Commit, BuildTime, runtime.Version())
}
