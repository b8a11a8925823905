package category

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// All is the storefront's "every category" filter value.
const All = "Tous"

var ErrCategoryNotFound = errors.New("category not found")

// slugRegex validates slug format (lowercase letters, numbers, hyphens)
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Category is one of the fixed storefront categories
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var names = []string{"Électronique", "Mode", "Maison", "Beauté", "Sport"}

// List returns the storefront categories in display order.
func List() []Category {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		out = append(out, Category{Name: n, Slug: generateSlug(n)})
	}
	return out
}

// Default is the category assigned to listings submitted without one.
func Default() string {
	return names[0]
}

// IsAll reports whether value selects every category. The empty string and
// "all" are accepted alongside the display sentinel.
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == All || strings.EqualFold(v, "all")
}

// Resolve maps a category name or slug to its display name.
func Resolve(value string) (string, error) {
	if IsAll(value) {
		return All, nil
	}
	v := strings.TrimSpace(value)
	for _, n := range names {
		if n == v {
			return n, nil
		}
	}
	slug := generateSlug(v)
	if slugRegex.MatchString(slug) {
		for _, n := range names {
			if generateSlug(n) == slug {
				return n, nil
			}
		}
	}
	return "", ErrCategoryNotFound
}

// generateSlug creates a URL-friendly slug from a name, folding accents
func generateSlug(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	slug := strings.ToLower(strings.TrimSpace(folded))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	slug = result.String()

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}
