package deps

import (
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/views"
	"github.com/MrSnakeDoc/linkshelf/internal/linkcheck"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedHosts    []string         // Host headers allowed to access the server
	AllowedCIDRS    []string         // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store           *store.Store     // bookmark collection
	Prober          linkcheck.Prober // link health checker used by check-status
	Views           *views.Renderer  // HTML pages
	SeedFile        string           // optional bookmarks.yaml for the seed action, empty = built-in set
	ProbeBurst      int              // check-status rate limit burst per client IP
	ProbeRefillRate int              // check-status tokens per minute per client IP
}

// Now returns the injected clock, or time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
