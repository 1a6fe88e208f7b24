// Package metadata renders selected frontmatter fields as HTML head tags
// placed before a page body.
package metadata

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/vaultsite/internal/frontmatterops"
)

// Kind selects how a field is rendered.
type Kind int

const (
	// KindMetaName renders <meta name="Name" content="..."/>.
	KindMetaName Kind = iota
	// KindMetaProperty renders <meta property="Name" content="..."/>.
	KindMetaProperty
	// KindLink renders <link rel="Name" href="..."/>.
	KindLink
	// KindTagList renders one <meta name="Name"/> per list item.
	KindTagList
)

// Handler binds a frontmatter field to a rendering.
type Handler struct {
	Field string // matched case-insensitively
	Kind  Kind
	Name  string
}

// Registry is the fixed set of handled fields, rendered in declaration order.
type Registry struct {
	handlers []Handler
	index    map[string]int
}

// NewRegistry builds a registry. Field names must be unique ignoring case.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(handlers))}
	for _, h := range handlers {
		key := strings.ToLower(h.Field)
		if key == "" || h.Name == "" {
			return nil, fmt.Errorf("metadata handler needs a field and a name: %+v", h)
		}
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("duplicate metadata handler for %q", h.Field)
		}
		r.index[key] = len(r.handlers)
		r.handlers = append(r.handlers, h)
	}
	return r, nil
}

// DefaultRegistry handles tags, dates, description, author, keywords and canonical.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Handler{Field: "modified", Kind: KindMetaProperty, Name: "article:modified_time"},
		Handler{Field: "created", Kind: KindMetaProperty, Name: "article:published_time"},
		Handler{Field: "tags", Kind: KindTagList, Name: "tag"},
		Handler{Field: "description", Kind: KindMetaName, Name: "description"},
		Handler{Field: "author", Kind: KindMetaName, Name: "author"},
		Handler{Field: "keywords", Kind: KindMetaName, Name: "keywords"},
		Handler{Field: "canonical", Kind: KindLink, Name: "canonical"},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds the handler for a field name.
func (r *Registry) Lookup(field string) (Handler, bool) {
	i, ok := r.index[strings.ToLower(field)]
	if !ok {
		return Handler{}, false
	}
	return r.handlers[i], true
}

// Render emits one line per handled field present in fields. Each line ends
// in "\n"; newlines inside a rendering are folded to spaces.
func (r *Registry) Render(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	// Resolve case-insensitive matches deterministically.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	byField := make(map[string]any, len(r.handlers))
	for _, k := range keys {
		if h, ok := r.Lookup(k); ok {
			if _, taken := byField[h.Field]; !taken {
				byField[h.Field] = fields[k]
			}
		}
	}

	var b strings.Builder
	for _, h := range r.handlers {
		v, ok := byField[h.Field]
		if !ok || v == nil {
			continue
		}
		out := strings.TrimSpace(render(h, v))
		if out == "" {
			continue
		}
		b.WriteString(strings.ReplaceAll(out, "\n", " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func render(h Handler, v any) string {
	name := html.EscapeString(h.Name)
	switch h.Kind {
	case KindTagList:
		items := listOf(v)
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf(`<meta name="%s" content="%s"/>`, name, html.EscapeString(item)))
		}
		return strings.Join(lines, "\n")
	case KindMetaProperty:
		return fmt.Sprintf(`<meta property="%s" content="%s"/>`, name, html.EscapeString(scalarOf(v)))
	case KindLink:
		return fmt.Sprintf(`<link rel="%s" href="%s"/>`, name, html.EscapeString(scalarOf(v)))
	default:
		return fmt.Sprintf(`<meta name="%s" content="%s"/>`, name, html.EscapeString(scalarOf(v)))
	}
}

func listOf(v any) []string {
	return frontmatterops.Tags(map[string]any{"tags": v})
}

func scalarOf(v any) string {
	if items, ok := v.([]any); ok {
		return strings.Join(listOf(items), ", ")
	}
	return frontmatterops.String(v)
}
