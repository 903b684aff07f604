package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkshelf/internal/linkcheck"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
)

// CheckStatus probes ?url= once and answers with the classified result.
// Only a missing or malformed url is a 400; every probe outcome is a 200.
func CheckStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := strings.TrimSpace(r.URL.Query().Get("url"))
		if target == "" {
			writeJSON(w, http.StatusBadRequest, linkcheck.Result{
				Status:  linkcheck.Error,
				Message: "URL parameter is required",
			})
			return
		}
		if err := domain.ValidateURL(target); err != nil {
			writeJSON(w, http.StatusBadRequest, linkcheck.Result{
				Status:  linkcheck.Error,
				Message: "Invalid URL provided",
			})
			return
		}

		// A client that goes away does not abort the probe; the checker
		// timeout is the only bound.
		res := d.Prober.Check(context.WithoutCancel(r.Context()), target)

		d.Logger.Debug("link checked",
			logger.String("url", target),
			logger.String("status", string(res.Status)),
			logger.Int("status_code", res.StatusCode))
		writeJSON(w, http.StatusOK, res)
	}
}
