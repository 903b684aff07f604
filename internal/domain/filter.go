package domain

import "strings"

// Filter narrows a listing. Zero value matches everything.
type Filter struct {
	// Tag keeps bookmarks carrying this tag (case-insensitive, exact).
	Tag string
	// Query keeps bookmarks whose title, description or any tag contains it (case-insensitive).
	Query string
}

// IsEmpty reports whether f filters nothing out.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Tag) == "" && strings.TrimSpace(f.Query) == ""
}

// Apply returns the matching bookmarks in their original order.
func (f Filter) Apply(bookmarks []Bookmark) []Bookmark {
	if f.IsEmpty() {
		return bookmarks
	}

	tag := strings.ToLower(strings.TrimSpace(f.Tag))
	term := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if tag != "" && !hasTag(b, tag) {
			continue
		}
		if term != "" && !matches(b, term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func hasTag(b Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

func matches(b Bookmark, term string) bool {
	if strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Description), term) {
		return true
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// AllTags returns every distinct tag (first spelling wins) in order of first appearance.
func AllTags(bookmarks []Bookmark) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}
	return tags
}
