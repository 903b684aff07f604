package domain

import (
	"net/url"
	"strings"
	"time"
)

// TimeLayout is the createdAt encoding: ISO-8601 UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Bookmark is one saved link, persisted as an element of the collection document.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is generated on creation and never changes.
	// Example: "k3v9x0q2ab"
	ID string `json:"id"`

	// CreatedAt is set once on creation (see TimeLayout).
	CreatedAt string `json:"createdAt"`

	// ─────────────────────────────
	// Editable fields
	// ─────────────────────────────

	Title string `json:"title"`

	// URL is absolute with an http or https scheme.
	URL string `json:"url"`

	Description string `json:"description,omitempty"`

	// Tags keep the order they were entered in. Duplicates are allowed.
	Tags []string `json:"tags"`
}

// BookmarkInput carries the user-editable fields for create and update.
type BookmarkInput struct {
	Title       string
	URL         string
	Description string
	Tags        []string
}

// Normalize trims the input and drops blank tags. It never fails.
func (in BookmarkInput) Normalize() BookmarkInput {
	return BookmarkInput{
		Title:       strings.TrimSpace(in.Title),
		URL:         strings.TrimSpace(in.URL),
		Description: strings.TrimSpace(in.Description),
		Tags:        CleanTags(in.Tags),
	}
}

// Validate reports the first missing or malformed field as a *ValidationError.
func (in BookmarkInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "title and url are required"}
	}
	if strings.TrimSpace(in.URL) == "" {
		return &ValidationError{Field: "url", Message: "title and url are required"}
	}
	if err := ValidateURL(strings.TrimSpace(in.URL)); err != nil {
		return &ValidationError{Field: "url", Message: "please enter a valid http or https link"}
	}
	return nil
}

// Apply copies the editable fields of in onto b, leaving ID and CreatedAt alone.
func (b Bookmark) Apply(in BookmarkInput) Bookmark {
	b.Title = in.Title
	b.URL = in.URL
	b.Description = in.Description
	b.Tags = in.Tags
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return b
}

// NewBookmark builds a fresh record from an already normalized input.
func NewBookmark(id string, in BookmarkInput, now time.Time) Bookmark {
	return Bookmark{ID: id, CreatedAt: FormatTime(now)}.Apply(in)
}

// FormatTime renders t in the createdAt layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ValidateURL accepts only absolute http(s) URLs with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidScheme
	}
	if u.Host == "" {
		return ErrMissingHost
	}
	return nil
}

// Domain returns the hostname of a bookmark URL, or "" when it cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// FaviconURL points at a public favicon service keyed by the link's domain.
func FaviconURL(raw string) string {
	host := Domain(raw)
	if host == "" {
		return ""
	}
	return "https://icons.duckduckgo.com/ip3/" + host + ".ico"
}
