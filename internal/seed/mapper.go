package seed

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
)

// ErrEmpty is returned when a document holds no usable bookmark.
var ErrEmpty = errors.New("no valid bookmarks found in document")

// Item is one flattened bookmark with the category it was listed under.
type Item struct {
	ID       string
	Category string
	Title    string
	Entry    Entry
}

// Flatten walks the document in file order. Within one YAML mapping the keys
// are sorted, since mappings carry no order once decoded. Entries without
// href are skipped.
func Flatten(doc Document) []Item {
	var items []Item
	for _, category := range doc {
		for _, categoryName := range sortedKeys(category) {
			for _, bookmarkMap := range category[categoryName] {
				for _, name := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[name]
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || strings.TrimSpace(entries[0].Href) == "" {
						continue
					}
					entry := entries[0]
					items = append(items, Item{
						ID:       entry.ID,
						Category: categoryName,
						Title:    name,
						Entry:    entry,
					})
				}
			}
		}
	}
	return items
}

// Input converts an item into create input. Explicit tags win; otherwise the
// category becomes the only tag.
func (it Item) Input() domain.BookmarkInput {
	tags := it.Entry.Tags
	if len(tags) == 0 && it.Category != "" {
		tags = []string{it.Category}
	}
	return domain.BookmarkInput{
		Title:       it.Title,
		URL:         it.Entry.Href,
		Description: it.Entry.Description,
		Tags:        tags,
	}.Normalize()
}

// ToInputs maps a document to store inputs for an import.
func ToInputs(doc Document) ([]domain.BookmarkInput, error) {
	items := Flatten(doc)
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	inputs := make([]domain.BookmarkInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, it.Input())
	}
	return inputs, nil
}

// ToBookmarks maps a document to full records, keeping explicit ids.
// Items without an id get one from newID.
func ToBookmarks(doc Document, now time.Time, newID func() (string, error)) ([]domain.Bookmark, error) {
	items := Flatten(doc)
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	bookmarks := make([]domain.Bookmark, 0, len(items))
	for _, it := range items {
		in := it.Input()
		if err := in.Validate(); err != nil {
			return nil, err
		}
		id := it.ID
		if id == "" {
			var err error
			if id, err = newID(); err != nil {
				return nil, err
			}
		}
		bookmarks = append(bookmarks, domain.NewBookmark(id, in, now))
	}
	return bookmarks, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
