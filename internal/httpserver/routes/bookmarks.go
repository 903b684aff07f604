package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	pages := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))

	pages.Get("/", handlers.Index(d))
	pages.Post("/", handlers.Seed(d))

	pages.Get("/bookmarks/new", handlers.NewForm(d))
	pages.Post("/bookmarks/new", handlers.Create(d))
	pages.Get("/bookmarks/{id}/edit", handlers.EditForm(d))
	pages.Post("/bookmarks/{id}/edit", handlers.Update(d))
	pages.Post("/bookmarks/{id}/destroy", handlers.Destroy(d))
	pages.Post("/bookmarks/destroy-all", handlers.DestroyAll(d))
}
