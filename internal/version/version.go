package version

import (
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/linkshelf/internal/version.Version=..."
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 9f1c2ab
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-02-01T09:12:00Z
	GoVersion = runtime.Version()
)

// UserAgent is sent with every outbound link probe.
func UserAgent() string {
	return "linkshelf/" + Version
}
