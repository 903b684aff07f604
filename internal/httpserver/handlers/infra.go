package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Backend   string `json:"backend,omitempty"`
	Bookmarks *int   `json:"bookmarks,omitempty"`
	Tags      *int   `json:"tags,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storage := checkStorage(r.Context(), d)

		components := map[string]componentStatus{
			"storage":    storage,
			"collection": collectionStatus(r.Context(), d, storage.OK),
			"linkcheck": {
				OK:   d.Prober != nil,
				Mode: "head-no-redirect",
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Storage down = every read is served empty and every write fails
	if storage, exists := components["storage"]; exists && !storage.OK {
		return "critical"
	}

	// No health checks = listing works, status dots stay grey
	if lc, exists := components["linkcheck"]; exists && !lc.OK {
		return "degraded"
	}

	return "operational"
}

func checkStorage(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Impact: "bookmarks-unavailable",
			Error:  "store not initialized",
		}
	}

	backend := d.Store.Backend()
	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: backend.Name(),
			Impact:  "bookmarks-unavailable",
			Error:   err.Error(),
		}
	}

	return componentStatus{
		OK:      true,
		Backend: backend.Name(),
		Impact:  "none",
	}
}

func collectionStatus(ctx context.Context, d deps.Deps, storageOK bool) componentStatus {
	if !storageOK {
		return componentStatus{OK: false}
	}
	all := d.Store.ListAll(ctx)
	count := len(all)
	tags := len(domain.AllTags(all))
	return componentStatus{
		OK:        true,
		Bookmarks: &count,
		Tags:      &tags,
	}
}
