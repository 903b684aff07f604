package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/views"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/seed"
)

// Index renders the listing page, narrowed by ?tag= and ?q=.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Store.ListAll(r.Context())
		filter := filterFromQuery(r)

		data := views.IndexData{
			Bookmarks: filter.Apply(all),
			Tags:      domain.AllTags(all),
			Filter:    filter,
			Total:     len(all),
		}
		render(w, d, http.StatusOK, views.PageIndex, data)
	}
}

// Seed writes the example collection when there is nothing stored yet.
func Seed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := seed.Load(d.SeedFile, d.Now())
		if err != nil {
			d.Logger.Error("failed to load seed data",
				logger.String("file", d.SeedFile),
				logger.Error(err))
			http.Error(w, "failed to load seed data", http.StatusInternalServerError)
			return
		}

		if _, err := d.Store.Seed(r.Context(), bookmarks); err != nil {
			storageFailure(w, d, "seed", err)
			return
		}
		redirectHome(w, r)
	}
}

func newForm() views.FormData {
	return views.FormData{Heading: "Add bookmark", Action: "/bookmarks/new", Submit: "Save"}
}

// NewForm renders an empty create form.
func NewForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, d, http.StatusOK, views.PageForm, newForm())
	}
}

// Create saves a new bookmark. Invalid input re-renders the form with the
// submitted values and a 400.
func Create(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := formInput(r)
		if err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if _, err := d.Store.Create(r.Context(), in); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				data := views.FormFromInput(in)
				form := newForm()
				data.Heading, data.Action, data.Submit = form.Heading, form.Action, form.Submit
				data.Error, data.Field = ve.Message, ve.Field
				render(w, d, http.StatusBadRequest, views.PageForm, data)
				return
			}
			storageFailure(w, d, "create", err)
			return
		}
		redirectHome(w, r)
	}
}

func editForm(id string, data views.FormData) views.FormData {
	data.Heading = "Edit bookmark"
	data.Action = "/bookmarks/" + id + "/edit"
	data.Submit = "Update"
	return data
}

// EditForm renders the edit form for an existing bookmark, or 404.
func EditForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		b, err := d.Store.Get(r.Context(), id)
		if err != nil {
			d.Logger.Debug("edit for unknown bookmark", logger.String("id", id), logger.Error(err))
			http.Error(w, "bookmark not found", http.StatusNotFound)
			return
		}
		render(w, d, http.StatusOK, views.PageForm, editForm(id, views.FormFromBookmark(b)))
	}
}

// Update rewrites a bookmark. An id that no longer exists is silently ignored.
func Update(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		in, err := formInput(r)
		if err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := d.Store.Update(r.Context(), id, in); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				data := editForm(id, views.FormFromInput(in))
				data.Error, data.Field = ve.Message, ve.Field
				render(w, d, http.StatusBadRequest, views.PageForm, data)
				return
			}
			storageFailure(w, d, "update", err)
			return
		}
		redirectHome(w, r)
	}
}

// Destroy deletes one bookmark.
func Destroy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			redirectHome(w, r)
			return
		}
		if err := d.Store.Delete(r.Context(), id); err != nil {
			storageFailure(w, d, "delete", err)
			return
		}
		redirectHome(w, r)
	}
}

// DestroyAll empties the collection.
func DestroyAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Clear(r.Context()); err != nil {
			storageFailure(w, d, "clear", err)
			return
		}
		redirectHome(w, r)
	}
}

func render(w http.ResponseWriter, d deps.Deps, status int, page string, data any) {
	if err := d.Views.Render(w, status, page, data); err != nil {
		d.Logger.Error("failed to render page",
			logger.String("page", page),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
