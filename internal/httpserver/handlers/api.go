package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
)

type bookmarksResponse struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
	Tags      []string          `json:"tags"`
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
}

// APIBookmarks is the JSON twin of the listing page.
func APIBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Store.ListAll(r.Context())
		matched := filterFromQuery(r).Apply(all)

		tags := domain.AllTags(all)
		if tags == nil {
			tags = []string{}
		}
		writeJSON(w, http.StatusOK, bookmarksResponse{
			Bookmarks: matched,
			Tags:      tags,
			Total:     len(all),
			Matched:   len(matched),
		})
	}
}
