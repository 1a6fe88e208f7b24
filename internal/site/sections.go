package site

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/vaultsite/internal/config"
	"git.home.luguber.info/inful/vaultsite/internal/pages"
	"git.home.luguber.info/inful/vaultsite/internal/pathmap"
)

// directoryIndex describes the _index.md of an export folder. weight is the
// number of folders seen before this one.
func directoryIndex(in pathmap.InputPath, opts config.Options, template string, weight int) pages.SectionIndex {
	return pages.SectionIndex{
		Title:     sectionTitle(in.Rel, opts),
		Template:  template,
		SortBy:    opts.Get(config.OptSortBy),
		Weight:    weight,
		HasWeight: true,
		Sidebar:   sectionSidebar(in.Rel, opts),
	}
}

func sectionTitle(rel string, opts config.Options) string {
	if rel == "" || rel == "." {
		return rootName(opts)
	}
	return rel
}

// sectionSidebar is the folder name, marked with the subsection symbol when
// the folder is nested.
func sectionSidebar(rel string, opts config.Options) string {
	if rel == "" || rel == "." {
		return rootName(opts)
	}
	symbol := ""
	if strings.Contains(rel, "/") {
		symbol = opts.Get(config.OptSubsectionSymbol)
	}
	return symbol + path.Base(rel)
}

func rootName(opts config.Options) string {
	if name := opts.Get(config.OptRootSectionName); name != "" {
		return name
	}
	return "main"
}

func indexPath(mp pathmap.Mapping) string {
	return filepath.Join(mp.Abs, "_index.md")
}
