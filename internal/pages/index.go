package pages

import (
	"git.home.luguber.info/inful/vaultsite/internal/frontmatter"
	"git.home.luguber.info/inful/vaultsite/internal/frontmatterops"
)

// SectionIndex is the frontmatter of a section's _index.md.
type SectionIndex struct {
	Title     string
	Template  string
	SortBy    string
	Weight    int
	HasWeight bool
	Sidebar   string
}

// Render produces the _index.md document.
func (s SectionIndex) Render() ([]byte, error) {
	fields := frontmatter.Fields{
		{Key: "title", Value: frontmatter.Quoted(s.Title)},
		{Key: "template", Value: s.Template},
		{Key: "sort_by", Value: s.SortBy},
	}
	if s.HasWeight {
		fields = append(fields, frontmatter.Field{Key: "weight", Value: s.Weight})
	}
	fields = append(fields, frontmatter.Field{
		Key:   "extra",
		Value: frontmatter.Fields{{Key: "sidebar", Value: s.Sidebar}},
	})
	return frontmatterops.Write(fields, nil)
}
