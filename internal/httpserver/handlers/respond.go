package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// redirectHome ends every successful mutation.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// storageFailure maps a failed load or write to a plain 500.
func storageFailure(w http.ResponseWriter, d deps.Deps, op string, err error) {
	d.Logger.Error("bookmark action failed",
		logger.String("op", op),
		logger.Bool("storage_read", errors.Is(err, store.ErrStorageRead)),
		logger.Bool("storage_write", errors.Is(err, store.ErrStorageWrite)),
		logger.Error(err))
	http.Error(w, "failed to save bookmarks, please try again", http.StatusInternalServerError)
}

// formInput reads the bookmark fields of a posted form.
func formInput(r *http.Request) (domain.BookmarkInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.BookmarkInput{}, err
	}
	return domain.BookmarkInput{
		Title:       r.PostForm.Get("title"),
		URL:         r.PostForm.Get("url"),
		Description: r.PostForm.Get("description"),
		Tags:        domain.ParseTags(r.PostForm.Get("tags")),
	}, nil
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{Tag: q.Get("tag"), Query: q.Get("q")}
}
