package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status    string    `json:"status"`
	Backend   string    `json:"backend,omitempty"`
	StartedAt string    `json:"started_at"`
	Uptime    string    `json:"uptime"`
	Build     buildInfo `json:"build"`
}

// Healthz is liveness only: it never touches storage, so a dead backend
// shows up on /readyz and /infra, not here.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	backend := ""
	if d.Store != nil {
		backend = d.Store.Backend().Name()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			Backend:   backend,
			StartedAt: d.StartTime.UTC().Format(time.RFC3339),
			Uptime:    d.Now().Sub(d.StartTime).Round(time.Second).String(),
			Build:     build,
		})
	}
}
