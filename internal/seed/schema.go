package seed

// Entry is one bookmark in a Homepage-style bookmarks.yaml.
//
// Homepage only knows href/abbr/icon; description, tags and id are linkshelf
// extensions and are optional.
type Entry struct {
	ID          string   `yaml:"id,omitempty"`
	Href        string   `yaml:"href"`
	Abbr        string   `yaml:"abbr,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Category maps a category name to its bookmarks.
// The YAML structure is: - CategoryName: [ - BookmarkName: [ { href, ... } ] ]
type Category map[string][]map[string][]Entry

// Document is the root of bookmarks.yaml.
type Document []Category
