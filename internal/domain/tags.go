package domain

import "strings"

// ParseTags splits a comma separated form value into clean tags.
// Example: " go, web,, cli " -> ["go", "web", "cli"]
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return CleanTags(strings.Split(raw, ","))
}

// CleanTags trims every tag and drops the empty ones, keeping order and duplicates.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags is the inverse of ParseTags for pre-filling forms.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
