package store

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugStrip      = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapse   = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// whitespace/underscore runs become hyphens, every other non-word character
// is stripped, leading/trailing hyphens trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug probes base, base-1, base-2, ... until taken reports a free slug.
func uniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = "untitled"
	}
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
