// Package views renders the HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names.
const (
	PageIndex = "index.html"
	PageForm  = "form.html"
)

// IndexData feeds the listing page.
type IndexData struct {
	Bookmarks []domain.Bookmark
	Tags      []string
	Filter    domain.Filter
	Total     int
}

// FormData feeds the create and edit page.
type FormData struct {
	Heading string
	Action  string
	Submit  string
	Title   string
	URL     string
	Desc    string
	Tags    string
	Error   string
	Field   string
}

// FormFromInput pre-fills a form with what the user submitted.
func FormFromInput(in domain.BookmarkInput) FormData {
	return FormData{
		Title: in.Title,
		URL:   in.URL,
		Desc:  in.Description,
		Tags:  domain.JoinTags(in.Tags),
	}
}

// FormFromBookmark pre-fills a form with a stored bookmark.
func FormFromBookmark(b domain.Bookmark) FormData {
	return FormData{
		Title: b.Title,
		URL:   b.URL,
		Desc:  b.Description,
		Tags:  domain.JoinTags(b.Tags),
	}
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"favicon": domain.FaviconURL,
		"domain":  domain.Domain,
		"joinTags": func(tags []string) string {
			return domain.JoinTags(tags)
		},
	}
}

// New parses the embedded templates. Each page gets its own instance so
// content blocks don't collide.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{PageIndex, PageForm} {
		tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes page into a buffer first, so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
