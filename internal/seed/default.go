package seed

import (
	_ "embed"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in example collection written by the seed action.
func Default(now time.Time) ([]domain.Bookmark, error) {
	doc, err := Parse(defaultYAML)
	if err != nil {
		return nil, err
	}
	return ToBookmarks(doc, now, domain.NewID)
}

// Load returns the seed set from a bookmarks.yaml file, or the built-in set
// when path is empty.
func Load(path string, now time.Time) ([]domain.Bookmark, error) {
	if path == "" {
		return Default(now)
	}
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return ToBookmarks(doc, now, domain.NewID)
}
