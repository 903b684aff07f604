package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/linkshelf/internal/domain"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// LoadFile reads and parses a bookmarks.yaml file.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a bookmarks.yaml document.
func Parse(data []byte) (Document, error) {
	// Homepage template variables ({{HOMEPAGE_VAR_...}}) have no meaning here.
	data = stripTemplateVariables(data)

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}
	return doc, nil
}

// stripTemplateVariables replaces every {{...}} with an empty string literal.
// Example: href: {{HOMEPAGE_VAR_URL}} -> href: ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}

// LoadInputs reads an import file. A .json file is a collection document as
// written by the store; anything else is parsed as bookmarks.yaml.
func LoadInputs(path string) ([]domain.BookmarkInput, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
		}
		var bookmarks []domain.Bookmark
		if err := json.Unmarshal(data, &bookmarks); err != nil {
			return nil, fmt.Errorf("failed to parse bookmarks json: %w", err)
		}
		if len(bookmarks) == 0 {
			return nil, ErrEmpty
		}
		inputs := make([]domain.BookmarkInput, 0, len(bookmarks))
		for _, b := range bookmarks {
			inputs = append(inputs, domain.BookmarkInput{
				Title:       b.Title,
				URL:         b.URL,
				Description: b.Description,
				Tags:        b.Tags,
			}.Normalize())
		}
		return inputs, nil
	}

	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return ToInputs(doc)
}
