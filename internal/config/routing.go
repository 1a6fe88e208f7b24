package config

import "strings"

// UnmatchedPolicy decides what happens to a page whose tags match no section.
type UnmatchedPolicy string

const (
	// UnmatchedDefault keeps the directory-derived destination.
	UnmatchedDefault UnmatchedPolicy = "default"
	// UnmatchedSkip drops the page from the output.
	UnmatchedSkip UnmatchedPolicy = "skip"
)

// Templates names the templates used for a section index and its pages.
type Templates struct {
	Section string `yaml:"section"`
	Page    string `yaml:"page"`
}

// TagRoute maps one frontmatter tag to an output section.
type TagRoute struct {
	Tag     string `yaml:"tag"`
	Section string `yaml:"section"`
}

// RoutingConfig controls tag-based section overrides.
type RoutingConfig struct {
	Tags      []TagRoute           `yaml:"tags"`
	Templates map[string]Templates `yaml:"templates"`
	Default   Templates            `yaml:"default"`
	Unmatched UnmatchedPolicy      `yaml:"unmatched"`
}

func defaultRouting() RoutingConfig {
	return RoutingConfig{
		Tags: []TagRoute{
			{Tag: "book", Section: "books"},
			{Tag: "article", Section: "articles"},
			{Tag: "philosophy", Section: "philosophy"},
		},
		Templates: map[string]Templates{
			"books":    {Section: "blog/books-section.html", Page: "blog/book-review.html"},
			"articles": {Section: "blog/articles-section.html", Page: "blog/article.html"},
		},
		Default:   Templates{Section: "blog/section.html", Page: "blog/page.html"},
		Unmatched: UnmatchedDefault,
	}
}

// SectionFor returns the section of the first tag, in document order, that has
// a route. ok is false when no tag matches.
func (r RoutingConfig) SectionFor(tags []string) (section string, ok bool) {
	for _, tag := range tags {
		for _, route := range r.Tags {
			if route.Tag == tag {
				return route.Section, true
			}
		}
	}
	return "", false
}

// TemplatesFor returns the templates of a section, falling back to the defaults.
func (r RoutingConfig) TemplatesFor(section string) Templates {
	if t, ok := r.Templates[section]; ok && section != "" {
		if t.Section == "" {
			t.Section = r.Default.Section
		}
		if t.Page == "" {
			t.Page = r.Default.Page
		}
		return t
	}
	return r.Default
}

// NormalizeUnmatched maps user input onto a known policy, returning "" if unknown.
func NormalizeUnmatched(raw string) UnmatchedPolicy {
	switch UnmatchedPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case UnmatchedDefault, "":
		return UnmatchedDefault
	case UnmatchedSkip:
		return UnmatchedSkip
	default:
		return ""
	}
}
